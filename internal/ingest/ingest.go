// Package ingest loads pre-scraped legislation files into the vector
// index and the instrument registry. Each input file holds one JSON
// instrument or an array of them.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"github.com/legisverde/legisverde/internal/config"
	"github.com/legisverde/legisverde/internal/lawref"
	"github.com/legisverde/legisverde/internal/progress"
	"github.com/legisverde/legisverde/internal/stats"
	"github.com/legisverde/legisverde/internal/vectordb"
)

// Instrument is the on-disk shape of one scraped legal instrument.
type Instrument struct {
	Title     string `json:"titulo"`
	Summary   string `json:"descricao"`
	Text      string `json:"texto"`
	Source    string `json:"fonte"`
	LawNumber string `json:"numero_lei"`
	Code      string `json:"codigo"`
	Type      string `json:"tipo"`
	Year      int    `json:"ano"`
	Status    string `json:"situacao"`
}

// Summary reports what one ingestion run did.
type Summary struct {
	Files       int
	Instruments int
	Chunks      int
	Skipped     int
}

// Ingester indexes instruments into the vector store and records them
// in the registry.
type Ingester struct {
	store      vectordb.VectorStore
	registry   *stats.Registry
	reporter   progress.Reporter
	namespaces config.Namespaces

	// DataDir is where the index snapshot is persisted after a run;
	// empty skips persistence (in-memory runs, tests).
	DataDir string

	ChunkWords   int
	OverlapWords int
}

// New creates an Ingester. The registry may be nil, in which case only
// the vector index is written.
func New(store vectordb.VectorStore, registry *stats.Registry, reporter progress.Reporter, namespaces config.Namespaces, dataDir string) *Ingester {
	return &Ingester{
		store:        store,
		registry:     registry,
		reporter:     reporter,
		namespaces:   namespaces,
		DataDir:      dataDir,
		ChunkWords:   DefaultChunkWords,
		OverlapWords: DefaultOverlapWords,
	}
}

// Run ingests every file matching the doublestar pattern. Files that
// fail to parse are skipped with a log line; indexing errors abort the
// run since a partial index silently degrades every future answer.
func (ing *Ingester) Run(ctx context.Context, pattern string) (*Summary, error) {
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("resolvendo padrão %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("nenhum arquivo corresponde a %q", pattern)
	}

	summary := &Summary{Files: len(paths)}
	if ing.reporter != nil {
		ing.reporter.Start(len(paths))
		defer ing.reporter.Finish()
	}

	for i, path := range paths {
		if ing.reporter != nil {
			ing.reporter.Update(i+1, path)
		}

		instruments, err := readInstruments(path)
		if err != nil {
			log.Printf("ingest: ignorando %s: %v", path, err)
			summary.Skipped++
			continue
		}

		for _, inst := range instruments {
			chunks, err := ing.index(ctx, inst)
			if err != nil {
				return nil, fmt.Errorf("indexando %s: %w", path, err)
			}
			summary.Instruments++
			summary.Chunks += chunks
		}
	}

	if ing.DataDir != "" && summary.Instruments > 0 {
		if err := ing.store.Persist(ctx, ing.DataDir); err != nil {
			return nil, fmt.Errorf("persistindo índice em %s: %w", ing.DataDir, err)
		}
	}
	return summary, nil
}

// index writes one instrument's chunks into its namespace and records
// the instrument in the registry. Returns how many chunks were written.
func (ing *Ingester) index(ctx context.Context, inst Instrument) (int, error) {
	if strings.TrimSpace(inst.Text) == "" {
		return 0, fmt.Errorf("instrumento %q sem texto", inst.Title)
	}

	namespace := ing.namespace(inst.Source)
	lawNumber := inst.LawNumber
	if lawNumber == "" {
		lawNumber = lawref.FromTitle(inst.Title)
	} else {
		lawNumber = lawref.Format(lawNumber)
	}
	code := inst.Code
	if code == "" {
		code = lawref.ABNTCode(inst.Title)
	}

	instrumentID := uuid.NewString()
	pieces := SplitWords(inst.Text, ing.ChunkWords, ing.OverlapWords)

	docs := make([]vectordb.Document, len(pieces))
	for i, piece := range pieces {
		meta := map[string]string{
			vectordb.MetaTitle:      inst.Title,
			vectordb.MetaSource:     namespace,
			vectordb.MetaChunkIndex: strconv.Itoa(i),
			vectordb.MetaChunkTotal: strconv.Itoa(len(pieces)),
			vectordb.MetaInstrument: instrumentID,
		}
		if inst.Summary != "" {
			meta[vectordb.MetaSummary] = inst.Summary
		}
		if lawNumber != "" {
			meta[vectordb.MetaLawNumber] = lawNumber
			meta[vectordb.MetaLawDigits] = lawref.Digits(lawNumber)
		}
		if code != "" {
			meta[vectordb.MetaCode] = code
		}
		if inst.Year > 0 {
			meta[vectordb.MetaYear] = strconv.Itoa(inst.Year)
		}
		if inst.Status != "" {
			meta[vectordb.MetaStatus] = inst.Status
		}
		docs[i] = vectordb.Document{ID: uuid.NewString(), Content: piece, Metadata: meta}
	}

	if err := ing.store.Add(ctx, namespace, docs); err != nil {
		return 0, err
	}

	if ing.registry != nil {
		err := ing.registry.Add(ctx, stats.Instrument{
			ID:        instrumentID,
			Title:     inst.Title,
			LawNumber: lawNumber,
			Type:      instrumentType(inst),
			Year:      inst.Year,
			Source:    namespace,
			Revoked:   isRevokedStatus(inst.Status),
			Chunks:    len(pieces),
		})
		if err != nil {
			return 0, err
		}
	}
	return len(pieces), nil
}

func (ing *Ingester) namespace(source string) string {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "abnt", "nbr", "norma":
		return ing.namespaces.Standards
	case "coema", "conselho":
		return ing.namespaces.Council
	default:
		return ing.namespaces.Statutes
	}
}

func instrumentType(inst Instrument) string {
	if inst.Type != "" {
		return strings.ToLower(inst.Type)
	}
	title := strings.ToLower(inst.Title)
	switch {
	case lawref.IsABNT(inst.Title) || inst.Code != "":
		return "norma técnica"
	case strings.Contains(title, "decreto"):
		return "decreto"
	case strings.Contains(title, "resolução") || strings.Contains(title, "resolucao"):
		return "resolução"
	case strings.Contains(title, "portaria"):
		return "portaria"
	default:
		return "lei"
	}
}

func isRevokedStatus(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "revoga") || strings.Contains(s, "nao vigente") || strings.Contains(s, "não vigente")
}

// readInstruments parses one JSON file holding either a single
// instrument object or an array of them.
func readInstruments(path string) ([]Instrument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []Instrument
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("json inválido: %w", err)
		}
		return list, nil
	}

	var one Instrument
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("json inválido: %w", err)
	}
	return []Instrument{one}, nil
}
