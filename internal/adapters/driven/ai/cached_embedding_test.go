package ai

import (
	"context"
	"testing"

	"github.com/docquery-labs/docquery-core/internal/core/ports/driven/mocks"
)

func TestCachedEmbedding_MissThenHit(t *testing.T) {
	inner := mocks.NewMockEmbeddingService()
	cache := mocks.NewMockEmbeddingCache()
	svc := NewCachedEmbedding(inner, cache)

	first, err := svc.Embed(context.Background(), []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls := inner.EmbedCalls(); calls != 1 {
		t.Fatalf("expected one inner call, got %d", calls)
	}

	second, err := svc.Embed(context.Background(), []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls := inner.EmbedCalls(); calls != 1 {
		t.Errorf("expected full cache hit, inner calls went to %d", calls)
	}
	if cache.Hits() < 2 {
		t.Errorf("expected 2 cache hits, got %d", cache.Hits())
	}

	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatal("cached vectors differ from originals")
			}
		}
	}
}

func TestCachedEmbedding_PartialMissKeepsOrder(t *testing.T) {
	inner := mocks.NewMockEmbeddingService()
	cache := mocks.NewMockEmbeddingCache()
	svc := NewCachedEmbedding(inner, cache)

	if _, err := svc.Embed(context.Background(), []string{"alpha"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Embed(context.Background(), []string{"beta", "alpha", "gamma"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(result))
	}
	for i, vector := range result {
		if len(vector) == 0 {
			t.Errorf("position %d has no vector", i)
		}
	}

	direct, _ := inner.EmbedQuery(context.Background(), "alpha")
	for j := range direct {
		if result[1][j] != direct[j] {
			t.Fatal("cached alpha vector does not match a direct embedding")
		}
	}
}

func TestCachedEmbedding_QueryCache(t *testing.T) {
	inner := mocks.NewMockEmbeddingService()
	cache := mocks.NewMockEmbeddingCache()
	svc := NewCachedEmbedding(inner, cache)

	if _, err := svc.EmbedQuery(context.Background(), "the question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := inner.EmbedCalls()
	if _, err := svc.EmbedQuery(context.Background(), "the question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.EmbedCalls() != before {
		t.Error("expected the repeated query served from cache")
	}
}

func TestCachedEmbedding_PassThroughMetadata(t *testing.T) {
	inner := mocks.NewMockEmbeddingService()
	svc := NewCachedEmbedding(inner, mocks.NewMockEmbeddingCache())

	if svc.Model() != inner.Model() {
		t.Error("expected the inner model name")
	}
	if svc.Dimensions() != inner.Dimensions() {
		t.Error("expected the inner dimensions")
	}
	if err := svc.Close(); err != nil {
		t.Errorf("unexpected error from Close: %v", err)
	}
}
