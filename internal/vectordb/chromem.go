package vectordb

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/legisverde/legisverde/internal/embeddings"
)

// ChromemStore implements VectorStore using chromem-go, with one
// collection per namespace.
type ChromemStore struct {
	db        *chromem.DB
	embedFunc chromem.EmbeddingFunc

	mu          sync.RWMutex
	collections map[string]*chromem.Collection
}

// NewChromemStore creates an in-memory ChromemStore backed by the given
// embedder.
func NewChromemStore(embedder embeddings.Embedder) *ChromemStore {
	return &ChromemStore{
		db:          chromem.NewDB(),
		embedFunc:   embeddings.ToChromemFunc(embedder),
		collections: make(map[string]*chromem.Collection),
	}
}

// collection returns the namespace's collection, creating it on first use.
func (s *ChromemStore) collection(namespace string) (*chromem.Collection, error) {
	s.mu.RLock()
	col, ok := s.collections[namespace]
	s.mu.RUnlock()
	if ok {
		return col, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if col, ok := s.collections[namespace]; ok {
		return col, nil
	}

	col, err := s.db.GetOrCreateCollection(namespace, nil, s.embedFunc)
	if err != nil {
		return nil, fmt.Errorf("create collection %q: %w", namespace, err)
	}
	s.collections[namespace] = col
	return col, nil
}

func (s *ChromemStore) Add(ctx context.Context, namespace string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	col, err := s.collection(namespace)
	if err != nil {
		return err
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:       doc.ID,
			Content:  doc.Content,
			Metadata: doc.Metadata,
		}
	}

	return col.AddDocuments(ctx, chromDocs, 1)
}

func (s *ChromemStore) Search(ctx context.Context, namespace, query string, k int, where map[string]string) ([]Result, error) {
	if k <= 0 {
		k = 10
	}

	col, err := s.collection(namespace)
	if err != nil {
		return nil, err
	}

	// chromem-go requires nResults <= collection size.
	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := col.Query(ctx, query, k, where, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query (%s): %w", namespace, err)
	}

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{
			Document: Document{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: r.Metadata,
			},
			Similarity: r.Similarity,
		}
	}

	return out, nil
}

func (s *ChromemStore) Count(namespace string) int {
	s.mu.RLock()
	col, ok := s.collections[namespace]
	s.mu.RUnlock()
	if !ok {
		return 0
	}
	return col.Count()
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	return s.db.ExportToFile(filepath.Join(dir, "chromem.gob.gz"), true, "")
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	if err := s.db.ImportFromFile(filepath.Join(dir, "chromem.gob.gz"), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection references after import.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = make(map[string]*chromem.Collection)
	for name := range s.db.ListCollections() {
		ref := s.db.GetCollection(name, s.embedFunc)
		if ref == nil {
			return fmt.Errorf("collection %q not found after import", name)
		}
		s.collections[name] = ref
	}
	return nil
}
