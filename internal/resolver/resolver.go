// Package resolver orchestrates a single query end to end: greeting
// and technical-question short circuits, law-number extraction, the
// exact-law and general retrieval paths, revocation filtering, answer
// synthesis and citation post-processing.
package resolver

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/legisverde/legisverde/internal/corpus"
	"github.com/legisverde/legisverde/internal/lawref"
	"github.com/legisverde/legisverde/internal/llm"
	"github.com/legisverde/legisverde/internal/textnorm"
)

// RelatedLaw describes one instrument cited by an answer.
type RelatedLaw struct {
	Title      string `json:"titulo"`
	Summary    string `json:"descricao,omitempty"`
	Excerpt    string `json:"trecho,omitempty"`
	Identifier string `json:"numero,omitempty"`
	Origin     string `json:"origem"`
}

// Response is the resolver's sole output shape. It is always
// well-formed: failures surface in Answer with zero related laws,
// never as an error to the transport layer.
type Response struct {
	Answer      string       `json:"resposta"`
	RelatedLaws []RelatedLaw `json:"leis_relacionadas"`
}

// Searcher is the retrieval surface the resolver depends on.
type Searcher interface {
	Retrieve(ctx context.Context, compacted, raw string, k int) ([]corpus.Chunk, error)
	RetrieveByLawNumber(ctx context.Context, number string, k int) ([]corpus.Chunk, error)
}

// Classifier routes greetings and system meta-questions away from
// retrieval.
type Classifier interface {
	IsGreeting(question string) bool
	IsTechnical(question string) bool
	Answer(ctx context.Context, question string) string
}

// Config holds the resolver's tuning knobs.
type Config struct {
	// Model passed on synthesis calls.
	Model string
	// GeneralK and LawNumberK bound the two retrieval paths.
	GeneralK   int
	LawNumberK int
	// MaxInflight bounds concurrent resolutions; excess callers wait.
	MaxInflight int
	// SynthesisTimeout applies to each language-model call.
	SynthesisTimeout time.Duration
}

// Resolver answers natural-language questions about environmental
// legislation. All dependencies are injected at construction; the
// resolver itself keeps no mutable per-query state.
type Resolver struct {
	searcher   Searcher
	provider   llm.Provider
	classifier Classifier
	filter     *corpus.RevocationFilter
	normalizer *textnorm.Normalizer
	cfg        Config
	slots      chan struct{}
}

// New creates a Resolver.
func New(searcher Searcher, provider llm.Provider, classifier Classifier, filter *corpus.RevocationFilter, normalizer *textnorm.Normalizer, cfg Config) *Resolver {
	if cfg.GeneralK <= 0 {
		cfg.GeneralK = 8
	}
	if cfg.LawNumberK <= 0 {
		cfg.LawNumberK = 5
	}
	if cfg.MaxInflight <= 0 {
		cfg.MaxInflight = 4
	}
	if cfg.SynthesisTimeout <= 0 {
		cfg.SynthesisTimeout = 45 * time.Second
	}
	return &Resolver{
		searcher:   searcher,
		provider:   provider,
		classifier: classifier,
		filter:     filter,
		normalizer: normalizer,
		cfg:        cfg,
		slots:      make(chan struct{}, cfg.MaxInflight),
	}
}

const (
	msgGreeting = "Olá! Sou o assistente de legislação ambiental. Posso ajudar com leis, decretos, " +
		"resoluções do COEMA e normas técnicas ABNT. O que você gostaria de saber?"
	msgNoResults = "Desculpe, não encontrei informações sobre esse assunto na legislação ambiental " +
		"indexada. Tente reformular a pergunta ou citar o número da lei."
	msgError = "Desculpe, ocorreu um erro ao processar sua consulta. Tente novamente em instantes."
)

func msgAllRevoked(number string) string {
	return fmt.Sprintf("A Lei nº %s foi localizada, mas consta como revogada e não está mais em vigor. "+
		"Posso ajudar a encontrar a legislação vigente sobre o mesmo tema.", number)
}

// Resolve answers one question. It never returns an error: every
// failure is converted into a diagnostic Answer with no related laws.
func (r *Resolver) Resolve(ctx context.Context, question string) *Response {
	select {
	case r.slots <- struct{}{}:
		defer func() { <-r.slots }()
	case <-ctx.Done():
		return &Response{Answer: msgError, RelatedLaws: []RelatedLaw{}}
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return &Response{Answer: msgNoResults, RelatedLaws: []RelatedLaw{}}
	}

	if r.classifier.IsGreeting(question) {
		return &Response{Answer: msgGreeting, RelatedLaws: []RelatedLaw{}}
	}
	if r.classifier.IsTechnical(question) {
		return &Response{Answer: r.classifier.Answer(ctx, question), RelatedLaws: []RelatedLaw{}}
	}

	if number := lawref.Extract(question); number != "" {
		if resp, done := r.exactLawPath(ctx, question, number); done {
			return resp
		}
		// Extraction hit but the lookup missed: carry the number into
		// the general path as query enrichment.
		question = fmt.Sprintf("Sobre a Lei %s: %s", number, question)
	}

	return r.generalPath(ctx, question)
}

// exactLawPath handles questions citing a specific statute number. The
// second return value is false when the lookup found nothing and the
// general path should take over.
func (r *Resolver) exactLawPath(ctx context.Context, question, number string) (*Response, bool) {
	chunks, err := r.searcher.RetrieveByLawNumber(ctx, number, r.cfg.LawNumberK)
	if err != nil {
		log.Printf("resolver: busca exata pela lei %s falhou: %v", number, err)
		return &Response{Answer: msgError, RelatedLaws: []RelatedLaw{}}, true
	}
	if len(chunks) == 0 {
		return nil, false
	}

	vigente := r.filter.Filter(chunks)
	if len(vigente) == 0 {
		return &Response{Answer: msgAllRevoked(number), RelatedLaws: []RelatedLaw{}}, true
	}
	vigente = corpus.Dedup(vigente)

	answer, err := r.synthesize(ctx, question, vigente)
	if err != nil {
		log.Printf("resolver: síntese para a lei %s falhou: %v", number, err)
		return &Response{Answer: msgError, RelatedLaws: []RelatedLaw{}}, true
	}

	answer = fmt.Sprintf("Lei nº %s:\n\n%s", number, answer)
	return r.finish(answer, vigente), true
}

// generalPath runs the multi-source semantic retrieval and, when even
// that comes back empty, the last-resort generic answer.
func (r *Resolver) generalPath(ctx context.Context, question string) *Response {
	compacted := r.normalizer.CompactQuery(question)

	chunks, err := r.searcher.Retrieve(ctx, compacted, question, r.cfg.GeneralK)
	if err != nil {
		log.Printf("resolver: recuperação falhou: %v", err)
		return &Response{Answer: msgError, RelatedLaws: []RelatedLaw{}}
	}

	chunks = corpus.Dedup(r.filter.Filter(chunks))
	if len(chunks) == 0 {
		return r.fallback(ctx, question)
	}

	answer, err := r.synthesize(ctx, question, chunks)
	if err != nil {
		log.Printf("resolver: síntese falhou: %v", err)
		return r.fallback(ctx, question)
	}
	return r.finish(answer, chunks)
}

// fallback is the last resort when retrieval found nothing usable or
// synthesis over the retrieved context failed.
func (r *Resolver) fallback(ctx context.Context, question string) *Response {
	sctx, cancel := context.WithTimeout(ctx, r.cfg.SynthesisTimeout)
	defer cancel()

	resp, err := r.provider.Complete(sctx, llm.CompletionRequest{
		Model: r.cfg.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: fallbackSystemPrompt},
			{Role: llm.RoleUser, Content: question},
		},
		Temperature: 0.2,
	})
	if err != nil {
		log.Printf("resolver: resposta genérica falhou: %v", err)
		return &Response{Answer: msgNoResults, RelatedLaws: []RelatedLaw{}}
	}
	answer := strings.TrimSpace(resp.Content)
	if answer == "" {
		answer = msgNoResults
	}
	return &Response{Answer: answer, RelatedLaws: []RelatedLaw{}}
}

// synthesize renders the retrieved chunks into a context block and asks
// the language model for a grounded answer.
func (r *Resolver) synthesize(ctx context.Context, question string, chunks []corpus.Chunk) (string, error) {
	sctx, cancel := context.WithTimeout(ctx, r.cfg.SynthesisTimeout)
	defer cancel()

	resp, err := r.provider.Complete(sctx, llm.CompletionRequest{
		Model: r.cfg.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: synthesisSystemPrompt},
			{Role: llm.RoleUser, Content: renderPrompt(question, chunks)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(resp.Content)
	if answer == "" {
		return "", fmt.Errorf("resposta vazia do provedor %s", r.provider.Name())
	}
	return answer, nil
}

const synthesisSystemPrompt = "Você é um assistente especializado em legislação ambiental brasileira. " +
	"Responda à pergunta usando exclusivamente o contexto fornecido. Cite os instrumentos normativos " +
	"pelo número ou código. Se o contexto não contiver a resposta, diga isso claramente. " +
	"Responda em português, de forma objetiva."

const fallbackSystemPrompt = "Você é um assistente especializado em legislação ambiental brasileira. " +
	"Não há documentos indexados que respondam à pergunta; responda com orientações gerais e deixe " +
	"claro que a resposta não cita a base de legislação indexada. Responda em português."

const chunkSeparator = "\n\n---\n\n"

func renderPrompt(question string, chunks []corpus.Chunk) string {
	blocks := make([]string, len(chunks))
	for i, c := range chunks {
		var b strings.Builder
		b.WriteString(c.DisplayTitle())
		if c.Summary != "" {
			b.WriteString("\n")
			b.WriteString(c.Summary)
		}
		b.WriteString("\n")
		b.WriteString(c.Text)
		blocks[i] = b.String()
	}
	return fmt.Sprintf("Contexto:\n%s\n\nPergunta: %s", strings.Join(blocks, chunkSeparator), question)
}

// finish applies the citation post-processing shared by both paths:
// the sorted "Leis consultadas" footer and the related-law descriptors
// with origin-labeled display titles.
func (r *Resolver) finish(answer string, chunks []corpus.Chunk) *Response {
	if footer := citationFooter(chunks); footer != "" {
		answer += footer
	}

	related := make([]RelatedLaw, len(chunks))
	for i, c := range chunks {
		related[i] = RelatedLaw{
			Title:      c.DisplayTitle(),
			Summary:    c.Summary,
			Excerpt:    excerpt(c.Text),
			Identifier: c.Identifier(),
			Origin:     origin(c),
		}
	}
	return &Response{Answer: answer, RelatedLaws: related}
}

func citationFooter(chunks []corpus.Chunk) string {
	seen := make(map[string]bool)
	var ids []string
	for _, c := range chunks {
		id := c.Identifier()
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)
	return "\n\nLeis consultadas: " + strings.Join(ids, ", ")
}

func origin(c corpus.Chunk) string {
	switch {
	case c.Source == corpus.SourceStandard || lawref.IsABNT(c.Title) || lawref.IsABNT(c.Code):
		return "ABNT"
	case c.Source == corpus.SourceCouncil:
		return "COEMA"
	default:
		return "legislação"
	}
}

const excerptLen = 240

func excerpt(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= excerptLen {
		return string(runes)
	}
	return string(runes[:excerptLen]) + "..."
}
