package vectordb

import (
	"context"
	"math"
	"testing"
)

// mockEmbedder returns deterministic embeddings based on text content.
// Similar texts produce similar vectors because shared characters
// contribute to the same positions.
type mockEmbedder struct {
	dims int
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		results[i] = m.deterministicVector(text)
	}
	return results, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }
func (m *mockEmbedder) Name() string    { return "mock" }

func (m *mockEmbedder) deterministicVector(text string) []float32 {
	vec := make([]float32, m.dims)
	for i, ch := range text {
		idx := (int(ch) + i) % m.dims
		vec[idx] += 1.0
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

func testStore() *ChromemStore {
	return NewChromemStore(&mockEmbedder{dims: 64})
}

func TestChromemStoreAddAndSearch(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	docs := []Document{
		{
			ID:      "lei-3519-0",
			Content: "Dispõe sobre a política estadual de resíduos sólidos",
			Metadata: map[string]string{
				MetaTitle:     "LEI Nº 3.519, DE 5 DE AGOSTO DE 2019",
				MetaLawNumber: "3.519",
				MetaLawDigits: "3519",
			},
		},
		{
			ID:      "lei-1307-0",
			Content: "Institui o código florestal estadual e dá outras providências",
			Metadata: map[string]string{
				MetaTitle:     "LEI Nº 1.307, DE 2002",
				MetaLawNumber: "1.307",
				MetaLawDigits: "1307",
			},
		},
	}

	if err := store.Add(ctx, "legislacao", docs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if got := store.Count("legislacao"); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}

	results, err := store.Search(ctx, "legislacao", "resíduos sólidos política", 2, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.ID != "lei-3519-0" {
		t.Errorf("expected resíduos chunk first, got %s", results[0].Document.ID)
	}
	if results[0].Similarity < results[1].Similarity {
		t.Error("results not ordered by descending similarity")
	}
}

func TestChromemStoreWhereFilter(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	docs := []Document{
		{ID: "a", Content: "texto da lei um", Metadata: map[string]string{MetaLawNumber: "3.519"}},
		{ID: "b", Content: "texto da lei dois", Metadata: map[string]string{MetaLawNumber: "1.307"}},
	}
	if err := store.Add(ctx, "legislacao", docs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := store.Search(ctx, "legislacao", "texto da lei", 5, map[string]string{MetaLawNumber: "3.519"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "a" {
		t.Errorf("where filter not applied, got %+v", results)
	}
}

func TestChromemStoreNamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	if err := store.Add(ctx, "legislacao", []Document{{ID: "l1", Content: "lei de saneamento"}}); err != nil {
		t.Fatalf("Add legislacao: %v", err)
	}
	if err := store.Add(ctx, "abnt", []Document{{ID: "n1", Content: "norma de saneamento"}}); err != nil {
		t.Fatalf("Add abnt: %v", err)
	}

	results, err := store.Search(ctx, "abnt", "saneamento", 10, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Document.ID != "n1" {
		t.Errorf("namespace leak: %+v", results)
	}
}

func TestChromemStoreEmptyNamespace(t *testing.T) {
	ctx := context.Background()
	store := testStore()

	results, err := store.Search(ctx, "vazio", "qualquer coisa", 5, nil)
	if err != nil {
		t.Fatalf("Search on empty namespace errored: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil results, got %+v", results)
	}
}

func TestChromemStorePersistAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store := testStore()
	if err := store.Add(ctx, "legislacao", []Document{{ID: "p1", Content: "lei persistida"}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Persist(ctx, dir); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	restored := testStore()
	if err := restored.Load(ctx, dir); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := restored.Count("legislacao"); got != 1 {
		t.Errorf("restored Count = %d, want 1", got)
	}
}
