package services

import (
	"context"
	"fmt"

	"github.com/docquery-labs/docquery-core/internal/chunking"
	"github.com/docquery-labs/docquery-core/internal/core/domain"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
	"github.com/docquery-labs/docquery-core/internal/index"
)

// RetrieverConfig configures indexing and retrieval behavior
type RetrieverConfig struct {
	Chunking chunking.Config

	// MaxChunks caps how many chunks one document may produce. The ceiling
	// protects downstream embedding cost.
	MaxChunks int

	// TopK is the default number of evidence chunks retrieved per question.
	// Larger values inflate the prompt and degrade generation quality.
	TopK int
}

// DefaultRetrieverConfig returns sensible defaults
func DefaultRetrieverConfig() RetrieverConfig {
	return RetrieverConfig{
		Chunking:  chunking.DefaultConfig(),
		MaxChunks: 2000,
		TopK:      3,
	}
}

// Retriever turns a document into a searchable index and a question into
// ranked evidence chunks. The embedding service is passed per call because
// it is selectable per session.
type Retriever struct {
	chunker *chunking.Chunker
	config  RetrieverConfig
}

// NewRetriever creates a Retriever, validating the chunking config.
func NewRetriever(config RetrieverConfig) (*Retriever, error) {
	if config.MaxChunks <= 0 {
		return nil, fmt.Errorf("%w: max chunks must be positive, got %d", domain.ErrInvalidConfig, config.MaxChunks)
	}
	if config.TopK <= 0 {
		return nil, fmt.Errorf("%w: top-k must be positive, got %d", domain.ErrInvalidConfig, config.TopK)
	}
	chunker, err := chunking.New(config.Chunking)
	if err != nil {
		return nil, err
	}
	return &Retriever{chunker: chunker, config: config}, nil
}

// Index chunks and embeds the document text in position order and builds
// the vector index. Embedding failures are surfaced, not retried.
func (r *Retriever) Index(ctx context.Context, embedder driven.EmbeddingService, doc *domain.Document) (*index.Index, error) {
	chunks := r.chunker.Chunk(doc.ID, doc.Text)
	if len(chunks) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	if len(chunks) > r.config.MaxChunks {
		return nil, fmt.Errorf("%w: %d chunks exceed the ceiling of %d", domain.ErrDocumentTooLarge, len(chunks), r.config.MaxChunks)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingFailure, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d chunks", domain.ErrEmbeddingFailure, len(vectors), len(chunks))
	}

	embedded := make([]domain.EmbeddedChunk, len(chunks))
	for i, chunk := range chunks {
		embedded[i] = domain.EmbeddedChunk{Chunk: chunk, Vector: vectors[i]}
	}
	return index.Build(embedded)
}

// Search embeds the question and returns the top-k evidence chunks in
// descending similarity order. topK <= 0 uses the configured default; the
// effective value is clamped to the number of indexed chunks.
func (r *Retriever) Search(ctx context.Context, embedder driven.EmbeddingService, searcher domain.Searcher, question string, topK int) ([]domain.Chunk, error) {
	if topK <= 0 {
		topK = r.config.TopK
	}
	if topK > searcher.Len() {
		topK = searcher.Len()
	}

	query, err := embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingFailure, err)
	}
	if len(query) != searcher.Dimensions() {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d", domain.ErrDimensionMismatch, len(query), searcher.Dimensions())
	}

	scored := searcher.Search(query, topK)
	evidence := make([]domain.Chunk, len(scored))
	for i, sc := range scored {
		evidence[i] = *sc.Chunk
	}
	return evidence, nil
}
