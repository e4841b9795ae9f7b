package vectordb

import "context"

// VectorStore is the nearest-neighbor service behind the retrieval
// pipeline. A namespace is a logical partition isolating one content
// source (statutes, technical standards, council documents) from the
// others.
type VectorStore interface {
	// Add inserts or updates documents in the given namespace.
	Add(ctx context.Context, namespace string, docs []Document) error

	// Search returns up to k documents from the namespace ordered by
	// descending similarity. A non-nil where map restricts results to
	// documents whose metadata matches every pair exactly.
	Search(ctx context.Context, namespace, query string, k int, where map[string]string) ([]Result, error)

	// Count returns the number of documents in the namespace.
	Count(namespace string) int

	// Persist saves the index to the given directory.
	Persist(ctx context.Context, dir string) error

	// Load restores the index from the given directory.
	Load(ctx context.Context, dir string) error
}
