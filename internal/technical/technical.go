// Package technical handles meta-questions about the service itself
// ("quantas leis você conhece?", "qual banco de dados você usa?").
// Routing them here keeps the semantic retriever from hunting for
// documents that answer questions about the system, and spares an LLM
// call for something index statistics answer deterministically.
package technical

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/legisverde/legisverde/internal/stats"
	"github.com/legisverde/legisverde/internal/textnorm"
)

// greetingMaxLen bounds what still counts as a bare greeting. Longer
// messages that happen to open with "olá" carry an actual question.
const greetingMaxLen = 50

// Keywords configures the detector. All lists are matched against the
// normalized question, so entries may be written with accents.
type Keywords struct {
	// Greetings are short salutation phrases.
	Greetings []string
	// Domain keywords mark a question as legal-domain. Their presence
	// vetoes technical classification regardless of other content.
	Domain []string
	// Technical is the full system/meta phrase list.
	Technical []string
	// Count, Database and Architecture are the answer sub-groups.
	Count        []string
	Database     []string
	Architecture []string
}

// Detector classifies greetings and technical meta-questions and
// produces statistics-backed answers for the latter.
type Detector struct {
	kw    Keywords
	stats stats.Provider
}

// New creates a Detector. Keyword lists are normalized once here so
// per-question matching is a plain substring scan.
func New(kw Keywords, provider stats.Provider) *Detector {
	return &Detector{kw: normalizeKeywords(kw), stats: provider}
}

func normalizeKeywords(kw Keywords) Keywords {
	return Keywords{
		Greetings:    normalizeList(kw.Greetings),
		Domain:       normalizeList(kw.Domain),
		Technical:    normalizeList(kw.Technical),
		Count:        normalizeList(kw.Count),
		Database:     normalizeList(kw.Database),
		Architecture: normalizeList(kw.Architecture),
	}
}

func normalizeList(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if n := textnorm.Normalize(item); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func containsAny(normalized string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

// IsGreeting reports whether the question is a bare salutation: it
// matches a greeting phrase, stays under the length cap and carries no
// legal-domain keyword.
func (d *Detector) IsGreeting(question string) bool {
	if len([]rune(strings.TrimSpace(question))) >= greetingMaxLen {
		return false
	}
	normalized := textnorm.Normalize(question)
	if normalized == "" {
		return false
	}
	if containsAny(normalized, d.kw.Domain) {
		return false
	}
	return containsAny(normalized, d.kw.Greetings)
}

// IsTechnical reports whether the question is about the system itself.
// A legal-domain keyword wins over a technical one: "qual lei fala de
// banco de dados?" is a legal question. The domain check runs on the
// question with matched technical phrases removed, so phrases like
// "quantas leis" are not vetoed by the "leis" they contain.
func (d *Detector) IsTechnical(question string) bool {
	normalized := textnorm.Normalize(question)
	if normalized == "" {
		return false
	}
	if d.IsGreeting(question) {
		return false
	}

	remainder := normalized
	matched := false
	for _, group := range [][]string{d.kw.Technical, d.kw.Count, d.kw.Database, d.kw.Architecture} {
		for _, p := range group {
			if strings.Contains(remainder, p) {
				matched = true
				remainder = strings.ReplaceAll(remainder, p, " ")
			}
		}
	}
	if !matched {
		return false
	}
	return !containsAny(remainder, d.kw.Domain)
}

// Answer produces the statistics-backed reply for a technical
// question. Statistics failures degrade to zeroed numbers rather than
// failing the question.
func (d *Detector) Answer(ctx context.Context, question string) string {
	snap, err := d.stats.Snapshot(ctx)
	if err != nil {
		log.Printf("technical: estatísticas indisponíveis: %v", err)
		snap = &stats.Snapshot{ByType: map[string]int{}}
	}

	normalized := textnorm.Normalize(question)
	switch {
	case containsAny(normalized, d.kw.Count):
		return d.countAnswer(snap)
	case containsAny(normalized, d.kw.Database):
		return d.databaseAnswer(snap)
	case containsAny(normalized, d.kw.Architecture):
		return d.architectureAnswer(snap)
	default:
		return d.genericAnswer(snap)
	}
}

func (d *Detector) countAnswer(snap *stats.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Atualmente tenho %d instrumentos normativos indexados, divididos em %d trechos pesquisáveis.", snap.Instruments, snap.Chunks)
	if snap.YearMin > 0 {
		fmt.Fprintf(&b, " O acervo cobre o período de %d a %d.", snap.YearMin, snap.YearMax)
	}
	if len(snap.ByType) > 0 {
		b.WriteString(" Por tipo: ")
		b.WriteString(formatByType(snap.ByType))
		b.WriteString(".")
	}
	return b.String()
}

func (d *Detector) databaseAnswer(snap *stats.Snapshot) string {
	return fmt.Sprintf(
		"Utilizo um banco de dados vetorial com busca semântica por similaridade de embeddings. "+
			"Cada instrumento normativo é dividido em trechos, convertido em vetores e indexado por coleção "+
			"(legislação, normas ABNT, resoluções COEMA). Hoje são %d trechos de %d instrumentos.",
		snap.Chunks, snap.Instruments)
}

func (d *Detector) architectureAnswer(snap *stats.Snapshot) string {
	return fmt.Sprintf(
		"Funciono em etapas: normalizo a pergunta, procuro referências diretas a números de lei, "+
			"consulto o índice vetorial nas coleções de legislação, normas técnicas e resoluções, "+
			"excluo instrumentos revogados e sintetizo a resposta com um modelo de linguagem, "+
			"sempre citando as leis consultadas. A base atual reúne %d instrumentos em %d trechos.",
		snap.Instruments, snap.Chunks)
}

func (d *Detector) genericAnswer(snap *stats.Snapshot) string {
	var b strings.Builder
	b.WriteString("Sou um assistente especializado em legislação ambiental brasileira. ")
	b.WriteString("Posso responder perguntas sobre leis, decretos, resoluções COEMA e normas técnicas ABNT, ")
	b.WriteString("localizar uma lei pelo número e indicar se um instrumento ainda está vigente.")
	if snap.Instruments > 0 {
		fmt.Fprintf(&b, " Minha base atual tem %d instrumentos indexados", snap.Instruments)
		if snap.YearMin > 0 {
			fmt.Fprintf(&b, ", de %d a %d", snap.YearMin, snap.YearMax)
		}
		b.WriteString(".")
	}
	return b.String()
}

func formatByType(byType map[string]int) string {
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = fmt.Sprintf("%d %s", byType[t], pluralize(t, byType[t]))
	}
	return strings.Join(parts, ", ")
}

func pluralize(tipo string, n int) string {
	if n == 1 {
		return tipo
	}
	switch tipo {
	case "lei":
		return "leis"
	case "decreto":
		return "decretos"
	case "resolução":
		return "resoluções"
	case "portaria":
		return "portarias"
	case "norma técnica":
		return "normas técnicas"
	default:
		return tipo
	}
}
