package retriever

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/legisverde/legisverde/internal/corpus"
	"github.com/legisverde/legisverde/internal/vectordb"
)

// fakeStore serves canned results per namespace and records the
// queries it saw.
type fakeStore struct {
	results map[string][]vectordb.Result
	errs    map[string]error
	calls   []call
}

type call struct {
	namespace string
	query     string
	k         int
	where     map[string]string
}

func (f *fakeStore) Add(context.Context, string, []vectordb.Document) error { return nil }

func (f *fakeStore) Count(string) int { return 0 }

func (f *fakeStore) Persist(context.Context, string) error { return nil }

func (f *fakeStore) Load(context.Context, string) error { return nil }

func (f *fakeStore) Search(_ context.Context, namespace, query string, k int, where map[string]string) ([]vectordb.Result, error) {
	f.calls = append(f.calls, call{namespace, query, k, where})
	if err := f.errs[namespace]; err != nil {
		return nil, err
	}
	results := f.results[namespace]
	if where != nil {
		var filtered []vectordb.Result
		for _, r := range results {
			match := true
			for key, val := range where {
				if r.Document.Metadata[key] != val {
					match = false
					break
				}
			}
			if match {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func statuteResult(id, title, text string) vectordb.Result {
	return vectordb.Result{
		Document: vectordb.Document{
			ID:      id,
			Content: text,
			Metadata: map[string]string{
				vectordb.MetaTitle: title,
			},
		},
	}
}

func testConfig() Config {
	return Config{
		Statutes:   "legislacao",
		Standards:  "abnt",
		Council:    "coema",
		SecondaryK: 2,
	}
}

func TestRetrieveFusesSourcesInOrder(t *testing.T) {
	store := &fakeStore{results: map[string][]vectordb.Result{
		"legislacao": {
			statuteResult("l1", "LEI Nº 1.000", "texto da lei mil"),
			statuteResult("l2", "LEI Nº 2.000", "texto da lei dois mil"),
		},
		"abnt": {
			{Document: vectordb.Document{ID: "n1", Content: "norma um", Metadata: map[string]string{vectordb.MetaTitle: "ABNT NBR 10004", vectordb.MetaCode: "ABNT NBR 10004"}}},
		},
		"coema": {
			{Document: vectordb.Document{ID: "c1", Content: "resolução um", Metadata: map[string]string{vectordb.MetaTitle: "RESOLUÇÃO COEMA Nº 02"}}},
		},
	}}

	r := New(store, testConfig())
	chunks, err := r.Retrieve(context.Background(), "licenciamento ambiental", "", 8)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if len(chunks) != 4 {
		t.Fatalf("expected 4 fused chunks, got %d", len(chunks))
	}
	// Primary first, secondaries appended, never interleaved.
	if chunks[0].Source != corpus.SourceStatute || chunks[1].Source != corpus.SourceStatute {
		t.Error("primary results must come first")
	}
	if chunks[2].OriginLabel != corpus.LabelABNT {
		t.Errorf("third chunk should be ABNT, got %+v", chunks[2])
	}
	if chunks[3].OriginLabel != corpus.LabelCOEMA {
		t.Errorf("fourth chunk should be COEMA, got %+v", chunks[3])
	}
}

func TestRetrieveSecondaryFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{
		results: map[string][]vectordb.Result{
			"legislacao": {statuteResult("l1", "LEI Nº 1.000", "texto")},
		},
		errs: map[string]error{
			"abnt":  errors.New("timeout"),
			"coema": errors.New("unavailable"),
		},
	}

	r := New(store, testConfig())
	chunks, err := r.Retrieve(context.Background(), "consulta", "", 8)
	if err != nil {
		t.Fatalf("secondary failures must not propagate: %v", err)
	}
	if len(chunks) != 1 {
		t.Errorf("expected only the primary chunk, got %d", len(chunks))
	}
}

func TestRetrievePrimaryFailurePropagates(t *testing.T) {
	store := &fakeStore{errs: map[string]error{"legislacao": errors.New("backend down")}}

	r := New(store, testConfig())
	if _, err := r.Retrieve(context.Background(), "consulta", "", 8); err == nil {
		t.Fatal("primary failure must propagate")
	}
}

func TestRetrieveSecondPassMergesWithPrefixDedup(t *testing.T) {
	shared := statuteResult("l1", "LEI Nº 1.000", strings.Repeat("texto compartilhado ", 10))
	store := &fakeStore{results: map[string][]vectordb.Result{
		"legislacao": {shared, statuteResult("l2", "LEI Nº 2.000", "texto exclusivo da compactada")},
	}}

	cfg := testConfig()
	cfg.Standards = ""
	cfg.Council = ""
	r := New(store, cfg)

	// Raw text normalizes differently from the compacted query, so a
	// second index call happens and its duplicates are dropped.
	chunks, err := r.Retrieve(context.Background(), "queimadas urbanas", "o que diz sobre as queimadas urbanas?", 8)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if len(store.calls) != 2 {
		t.Fatalf("expected 2 primary searches, got %d", len(store.calls))
	}
	if len(chunks) != 2 {
		t.Errorf("prefix duplicates not removed: got %d chunks", len(chunks))
	}
}

func TestRetrieveSkipsSecondPassWhenCompactionChangedNothing(t *testing.T) {
	store := &fakeStore{results: map[string][]vectordb.Result{
		"legislacao": {statuteResult("l1", "LEI Nº 1.000", "texto")},
	}}

	cfg := testConfig()
	cfg.Standards = ""
	cfg.Council = ""
	r := New(store, cfg)

	if _, err := r.Retrieve(context.Background(), "licenciamento ambiental", "licenciamento ambiental", 8); err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(store.calls) != 1 {
		t.Errorf("expected a single search, got %d", len(store.calls))
	}
}

func TestRetrieveByLawNumber(t *testing.T) {
	target := vectordb.Result{
		Document: vectordb.Document{
			ID:      "l1",
			Content: "Art. 1º ...",
			Metadata: map[string]string{
				vectordb.MetaTitle:     "LEI Nº 3.519, DE 2019",
				vectordb.MetaLawNumber: "3.519",
			},
		},
	}
	store := &fakeStore{results: map[string][]vectordb.Result{"legislacao": {target}}}

	r := New(store, testConfig())
	chunks, err := r.RetrieveByLawNumber(context.Background(), "3519", 5)
	if err != nil {
		t.Fatalf("RetrieveByLawNumber failed: %v", err)
	}
	if len(chunks) != 1 || chunks[0].LawNumber != "3.519" {
		t.Fatalf("unexpected chunks: %+v", chunks)
	}
	if store.calls[0].where[vectordb.MetaLawNumber] != "3.519" {
		t.Errorf("expected punctuated-form filter, got %v", store.calls[0].where)
	}
}

func TestRetrieveByLawNumberFallsBackToDigits(t *testing.T) {
	target := vectordb.Result{
		Document: vectordb.Document{
			ID:      "l1",
			Content: "Art. 1º ...",
			Metadata: map[string]string{
				vectordb.MetaTitle:     "LEI Nº 3.519, DE 2019",
				vectordb.MetaLawDigits: "3519",
			},
		},
	}
	store := &fakeStore{results: map[string][]vectordb.Result{"legislacao": {target}}}

	r := New(store, testConfig())
	chunks, err := r.RetrieveByLawNumber(context.Background(), "3.519", 5)
	if err != nil {
		t.Fatalf("RetrieveByLawNumber failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("digit-form fallback did not run: %+v", chunks)
	}
	if len(store.calls) != 2 {
		t.Errorf("expected 2 searches, got %d", len(store.calls))
	}
	if store.calls[1].where[vectordb.MetaLawDigits] != "3519" {
		t.Errorf("expected digit-form filter, got %v", store.calls[1].where)
	}
}
