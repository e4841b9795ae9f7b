// Package retriever queries the vector index once per configured
// content source and fuses the results into a single chunk list.
package retriever

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/legisverde/legisverde/internal/corpus"
	"github.com/legisverde/legisverde/internal/lawref"
	"github.com/legisverde/legisverde/internal/textnorm"
	"github.com/legisverde/legisverde/internal/vectordb"
)

// Config holds the namespace names and fan-out bounds.
type Config struct {
	// Statutes is the primary namespace. Its failure is the only one
	// that propagates to the caller.
	Statutes string
	// Standards and Council are the secondary namespaces; empty
	// disables that fan-out.
	Standards string
	Council   string
	// SecondaryK bounds each secondary-source query.
	SecondaryK int
	// SearchTimeout applies to each individual index call.
	SearchTimeout time.Duration
}

// Retriever fans a query out across the configured sources.
type Retriever struct {
	store vectordb.VectorStore
	cfg   Config
}

// New creates a Retriever over the given store.
func New(store vectordb.VectorStore, cfg Config) *Retriever {
	if cfg.SecondaryK <= 0 {
		cfg.SecondaryK = 2
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = 20 * time.Second
	}
	return &Retriever{store: store, cfg: cfg}
}

func (r *Retriever) search(ctx context.Context, namespace, query string, k int, where map[string]string) ([]vectordb.Result, error) {
	sctx, cancel := context.WithTimeout(ctx, r.cfg.SearchTimeout)
	defer cancel()
	return r.store.Search(sctx, namespace, query, k, where)
}

// Retrieve runs the general semantic path: the primary statute search
// on the compacted query, optionally a second pass on the raw text when
// compaction changed it, then the secondary-source fan-outs. Secondary
// failures are logged and omitted; a primary failure propagates since
// it has no fallback. Fused results are appended after the primary
// sequence, never interleaved, because similarity scores from
// different namespaces are not comparable.
func (r *Retriever) Retrieve(ctx context.Context, compacted, raw string, k int) ([]corpus.Chunk, error) {
	primary, err := r.search(ctx, r.cfg.Statutes, compacted, k, nil)
	if err != nil {
		return nil, fmt.Errorf("busca principal (%s): %w", r.cfg.Statutes, err)
	}
	chunks := corpus.FromResults(primary, corpus.SourceStatute)

	// A second pass over the unnormalized text catches chunks whose
	// raw phrasing is closer to the user's words. Only worth the extra
	// call when compaction actually changed the query.
	if raw != "" && textnorm.Normalize(raw) != compacted {
		rawResults, err := r.search(ctx, r.cfg.Statutes, raw, k, nil)
		if err != nil {
			log.Printf("retriever: segunda busca (texto bruto) falhou: %v", err)
		} else {
			chunks = mergeByPrefix(chunks, corpus.FromResults(rawResults, corpus.SourceStatute), k)
		}
	}

	chunks = append(chunks, r.secondary(ctx, r.cfg.Standards, corpus.SourceStandard, compacted)...)
	chunks = append(chunks, r.secondary(ctx, r.cfg.Council, corpus.SourceCouncil, compacted)...)

	return chunks, nil
}

// secondary queries one non-primary namespace. Errors never propagate:
// the source's results are simply omitted.
func (r *Retriever) secondary(ctx context.Context, namespace string, kind corpus.SourceKind, query string) []corpus.Chunk {
	if namespace == "" {
		return nil
	}
	results, err := r.search(ctx, namespace, query, r.cfg.SecondaryK, nil)
	if err != nil {
		log.Printf("retriever: fonte secundária %s indisponível: %v", namespace, err)
		return nil
	}
	return corpus.FromResults(results, kind)
}

// RetrieveByLawNumber runs a structured-filter query for chunks of the
// given statute, trying the punctuated form first and the digit-only
// form second. Results keep the backend's native order; the filter
// already guarantees relevance.
func (r *Retriever) RetrieveByLawNumber(ctx context.Context, number string, k int) ([]corpus.Chunk, error) {
	formatted := lawref.Format(number)

	results, err := r.search(ctx, r.cfg.Statutes, "lei "+formatted, k, map[string]string{
		vectordb.MetaLawNumber: formatted,
	})
	if err != nil {
		return nil, fmt.Errorf("busca por número de lei (%s): %w", formatted, err)
	}

	if len(results) == 0 {
		results, err = r.search(ctx, r.cfg.Statutes, "lei "+formatted, k, map[string]string{
			vectordb.MetaLawDigits: lawref.Digits(formatted),
		})
		if err != nil {
			return nil, fmt.Errorf("busca por número de lei (%s): %w", formatted, err)
		}
	}

	return corpus.FromResults(results, corpus.SourceStatute), nil
}

// mergeByPrefix appends extras whose first-100-character text prefix is
// not already present, capping the merged list at k.
func mergeByPrefix(kept, extras []corpus.Chunk, k int) []corpus.Chunk {
	seen := make(map[string]bool, len(kept))
	for _, c := range kept {
		seen[textPrefix(c)] = true
	}
	for _, c := range extras {
		if len(kept) >= k {
			break
		}
		p := textPrefix(c)
		if seen[p] {
			continue
		}
		seen[p] = true
		kept = append(kept, c)
	}
	if len(kept) > k {
		kept = kept[:k]
	}
	return kept
}

func textPrefix(c corpus.Chunk) string {
	if len(c.Text) > 100 {
		return c.Text[:100]
	}
	return c.Text
}
