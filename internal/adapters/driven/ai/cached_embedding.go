package ai

import (
	"context"

	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
)

// Ensure CachedEmbedding implements EmbeddingService
var _ driven.EmbeddingService = (*CachedEmbedding)(nil)

// CachedEmbedding wraps an EmbeddingService with a cache keyed by model and
// text. Re-uploading the same document skips the provider round-trips. Cache
// errors are treated as misses; the cache never makes an embedding call fail.
type CachedEmbedding struct {
	inner driven.EmbeddingService
	cache driven.EmbeddingCache
}

// NewCachedEmbedding wraps inner with cache
func NewCachedEmbedding(inner driven.EmbeddingService, cache driven.EmbeddingCache) *CachedEmbedding {
	return &CachedEmbedding{inner: inner, cache: cache}
}

// Embed returns cached vectors where available and embeds only the misses,
// preserving input order.
func (c *CachedEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	model := c.inner.Model()
	result := make([][]float32, len(texts))

	var missing []string
	var missingIdx []int
	for i, text := range texts {
		if vector, ok, err := c.cache.Get(ctx, model, text); err == nil && ok {
			result[i] = vector
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return result, nil
	}

	vectors, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}

	for j, vector := range vectors {
		result[missingIdx[j]] = vector
		_ = c.cache.Set(ctx, model, missing[j], vector)
	}
	return result, nil
}

// EmbedQuery embeds a query through the cache
func (c *CachedEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	model := c.inner.Model()
	if vector, ok, err := c.cache.Get(ctx, model, query); err == nil && ok {
		return vector, nil
	}

	vector, err := c.inner.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, model, query, vector)
	return vector, nil
}

// Dimensions returns the wrapped service's dimensions
func (c *CachedEmbedding) Dimensions() int {
	return c.inner.Dimensions()
}

// Model returns the wrapped service's model name
func (c *CachedEmbedding) Model() string {
	return c.inner.Model()
}

// Close closes the wrapped service. The cache has its own lifecycle.
func (c *CachedEmbedding) Close() error {
	return c.inner.Close()
}
