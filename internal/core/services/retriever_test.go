package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docquery-labs/docquery-core/internal/chunking"
	"github.com/docquery-labs/docquery-core/internal/core/domain"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driven/mocks"
)

func testDocument(text string) *domain.Document {
	return &domain.Document{ID: "doc-1", Filename: "doc.txt", Text: text}
}

func TestRetriever_IndexAndSearch(t *testing.T) {
	retriever, err := NewRetriever(RetrieverConfig{
		Chunking:  chunking.Config{ChunkSize: 60, Overlap: 10},
		MaxChunks: 100,
		TopK:      3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	embedder := mocks.NewMockEmbeddingService()
	text := "Photosynthesis converts sunlight into chemical energy. " +
		"Volcanoes erupt molten rock from deep underground chambers. " +
		"Jazz musicians improvise melodies over shifting harmonies."
	idx, err := retriever.Index(context.Background(), embedder, testDocument(text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Len() == 0 {
		t.Fatal("expected a non-empty index")
	}

	evidence, err := retriever.Search(context.Background(), embedder, idx, "what do volcanoes erupt?", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evidence) != 1 {
		t.Fatalf("expected 1 evidence chunk, got %d", len(evidence))
	}
	if !strings.Contains(evidence[0].Content, "olcano") {
		t.Errorf("expected the volcano chunk, got %q", evidence[0].Content)
	}
}

func TestRetriever_IndexEmptyDocument(t *testing.T) {
	retriever, _ := NewRetriever(DefaultRetrieverConfig())
	_, err := retriever.Index(context.Background(), mocks.NewMockEmbeddingService(), testDocument(""))
	if !errors.Is(err, domain.ErrEmptyDocument) {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestRetriever_IndexDocumentTooLarge(t *testing.T) {
	retriever, err := NewRetriever(RetrieverConfig{
		Chunking:  chunking.Config{ChunkSize: 10, Overlap: 2},
		MaxChunks: 3,
		TopK:      3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = retriever.Index(context.Background(), mocks.NewMockEmbeddingService(), testDocument(strings.Repeat("words and more words ", 50)))
	if !errors.Is(err, domain.ErrDocumentTooLarge) {
		t.Errorf("expected ErrDocumentTooLarge, got %v", err)
	}
}

func TestRetriever_IndexEmbeddingFailure(t *testing.T) {
	retriever, _ := NewRetriever(DefaultRetrieverConfig())
	embedder := mocks.NewMockEmbeddingService()
	embedder.SetFailNext(true)
	_, err := retriever.Index(context.Background(), embedder, testDocument("some document text"))
	if !errors.Is(err, domain.ErrEmbeddingFailure) {
		t.Errorf("expected ErrEmbeddingFailure, got %v", err)
	}
}

func TestRetriever_IndexSingleBatch(t *testing.T) {
	retriever, err := NewRetriever(RetrieverConfig{
		Chunking:  chunking.Config{ChunkSize: 40, Overlap: 5},
		MaxChunks: 100,
		TopK:      3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	embedder := mocks.NewMockEmbeddingService()
	_, err = retriever.Index(context.Background(), embedder, testDocument(strings.Repeat("several distinct words here ", 10)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls := embedder.EmbedCalls(); calls != 1 {
		t.Errorf("expected all chunks embedded in one call, got %d calls", calls)
	}
}

func TestRetriever_SearchEmbeddingFailure(t *testing.T) {
	retriever, _ := NewRetriever(DefaultRetrieverConfig())
	embedder := mocks.NewMockEmbeddingService()
	idx, err := retriever.Index(context.Background(), embedder, testDocument("a short document"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	embedder.SetFailNext(true)
	_, err = retriever.Search(context.Background(), embedder, idx, "question", 0)
	if !errors.Is(err, domain.ErrEmbeddingFailure) {
		t.Errorf("expected ErrEmbeddingFailure, got %v", err)
	}
}

func TestRetriever_SearchDimensionMismatch(t *testing.T) {
	retriever, _ := NewRetriever(DefaultRetrieverConfig())
	embedder := mocks.NewMockEmbeddingService()
	idx, err := retriever.Index(context.Background(), embedder, testDocument("a short document"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	embedder.SetDimensions(64)
	_, err = retriever.Search(context.Background(), embedder, idx, "question", 0)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestRetriever_SearchClampsTopK(t *testing.T) {
	retriever, err := NewRetriever(RetrieverConfig{
		Chunking:  chunking.DefaultConfig(),
		MaxChunks: 100,
		TopK:      5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	embedder := mocks.NewMockEmbeddingService()
	idx, err := retriever.Index(context.Background(), embedder, testDocument("one tiny document"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	evidence, err := retriever.Search(context.Background(), embedder, idx, "tiny document?", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evidence) != idx.Len() {
		t.Errorf("expected top-k clamped to %d indexed chunks, got %d", idx.Len(), len(evidence))
	}
}

func TestNewRetriever_InvalidConfig(t *testing.T) {
	cases := []RetrieverConfig{
		{Chunking: chunking.DefaultConfig(), MaxChunks: 0, TopK: 3},
		{Chunking: chunking.DefaultConfig(), MaxChunks: 100, TopK: 0},
		{Chunking: chunking.Config{ChunkSize: -1}, MaxChunks: 100, TopK: 3},
	}
	for i, cfg := range cases {
		if _, err := NewRetriever(cfg); !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}
