package stats

import (
	"context"
	"strings"

	"github.com/legisverde/legisverde/internal/corpus"
	"github.com/legisverde/legisverde/internal/vectordb"
)

// sampleSize bounds how many chunks per namespace the sampler reads
// when estimating instrument counts.
const sampleSize = 200

// Sampler derives approximate statistics straight from the vector
// index. It exists for corpora indexed before the registry was
// introduced, where no catalog rows are available.
type Sampler struct {
	store      vectordb.VectorStore
	namespaces map[string]corpus.SourceKind
}

// NewSampler creates a Sampler over the given namespaces.
func NewSampler(store vectordb.VectorStore, namespaces map[string]corpus.SourceKind) *Sampler {
	return &Sampler{store: store, namespaces: namespaces}
}

// Snapshot estimates corpus statistics by sampling each namespace.
// Chunk counts are exact; instrument counts and year bounds reflect
// only the sampled portion.
func (s *Sampler) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{ByType: make(map[string]int)}
	seen := make(map[string]bool)

	for namespace, kind := range s.namespaces {
		count := s.store.Count(namespace)
		snap.Chunks += count
		if count == 0 {
			continue
		}

		k := count
		if k > sampleSize {
			k = sampleSize
		}
		results, err := s.store.Search(ctx, namespace, "legislação ambiental", k, nil)
		if err != nil {
			return nil, err
		}

		for _, chunk := range corpus.FromResults(results, kind) {
			id := chunk.Identifier()
			if id == "" {
				id = chunk.Title
			}
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			snap.Instruments++
			snap.ByType[classify(chunk)]++

			if chunk.Year > 0 {
				if snap.YearMin == 0 || chunk.Year < snap.YearMin {
					snap.YearMin = chunk.Year
				}
				if chunk.Year > snap.YearMax {
					snap.YearMax = chunk.Year
				}
			}
		}
	}
	return snap, nil
}

func classify(c corpus.Chunk) string {
	if c.Source == corpus.SourceStandard {
		return "norma técnica"
	}
	title := strings.ToLower(c.Title)
	switch {
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
