package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EmbeddingCache = (*EmbeddingCache)(nil)

const embeddingPrefix = "embedding:"

// EmbeddingCache implements driven.EmbeddingCache using Redis. Entries are
// keyed by model and a hash of the text, so re-uploading a document reuses
// the vectors already paid for. Entries expire via Redis TTL.
type EmbeddingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEmbeddingCache creates a new Redis-backed EmbeddingCache. ttl <= 0
// stores entries without expiry.
func NewEmbeddingCache(client *redis.Client, ttl time.Duration) *EmbeddingCache {
	return &EmbeddingCache{client: client, ttl: ttl}
}

// Get looks up a cached vector. A missing entry is (nil, false, nil).
func (c *EmbeddingCache) Get(ctx context.Context, model, text string) ([]float32, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(model, text)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached embedding: %w", err)
	}

	var vector []float32
	if err := json.Unmarshal(data, &vector); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached embedding: %w", err)
	}
	return vector, true, nil
}

// Set stores a vector under the model and text key
func (c *EmbeddingCache) Set(ctx context.Context, model, text string, vector []float32) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, cacheKey(model, text), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache embedding: %w", err)
	}
	return nil
}

// Close closes the underlying client
func (c *EmbeddingCache) Close() error {
	return c.client.Close()
}

// cacheKey hashes the text so arbitrarily large chunks produce fixed-size
// keys.
func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return embeddingPrefix + model + ":" + hex.EncodeToString(sum[:])
}
