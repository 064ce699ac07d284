package driven

import "context"

// EmbeddingCache stores embedding vectors keyed by model and input text.
// Embedding the same passage twice is common (re-uploading a document after
// an edit re-embeds every unchanged chunk), and embeddings are deterministic
// per model, so a cache sits safely in front of the embedding service.
type EmbeddingCache interface {
	// Get returns the cached vector for (model, text) and whether it was present
	Get(ctx context.Context, model, text string) ([]float32, bool, error)

	// Set stores the vector for (model, text)
	Set(ctx context.Context, model, text string, vector []float32) error

	// Close releases resources held by the cache
	Close() error
}
