package driven

import (
	"context"
)

// EmbeddingService maps text to fixed-length vectors
type EmbeddingService interface {
	// Embed generates embeddings for multiple texts, preserving input order
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a search query
	EmbedQuery(ctx context.Context, query string) ([]float32, error)

	// Dimensions returns the declared output dimension, or 0 if not yet known
	Dimensions() int

	// Model returns the model name being used
	Model() string

	// Close releases resources held by the embedding service
	Close() error
}
