package mocks

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

// MockEmbeddingService is a deterministic EmbeddingService for testing.
// Each text is embedded as a bag-of-words histogram over hashed token
// buckets, so cosine similarity between two texts tracks their token
// overlap. That keeps retrieval tests meaningful: a question sharing words
// with exactly one chunk ranks that chunk first.
type MockEmbeddingService struct {
	dimensions int
	model      string
	failNext   bool
	embedCalls int
	closed     bool
}

// NewMockEmbeddingService creates a new MockEmbeddingService
func NewMockEmbeddingService() *MockEmbeddingService {
	return &MockEmbeddingService{
		dimensions: 256,
		model:      "mock-embedding-model",
	}
}

func (m *MockEmbeddingService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if m.failNext {
		m.failNext = false
		return nil, context.DeadlineExceeded
	}
	m.embedCalls++
	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = m.generateEmbedding(text)
	}
	return result, nil
}

func (m *MockEmbeddingService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if m.failNext {
		m.failNext = false
		return nil, context.DeadlineExceeded
	}
	m.embedCalls++
	return m.generateEmbedding(query), nil
}

func (m *MockEmbeddingService) Dimensions() int {
	return m.dimensions
}

func (m *MockEmbeddingService) Model() string {
	return m.model
}

func (m *MockEmbeddingService) Close() error {
	m.closed = true
	return nil
}

func (m *MockEmbeddingService) generateEmbedding(text string) []float32 {
	embedding := make([]float32, m.dimensions)
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		h := fnv.New32a()
		h.Write([]byte(token))
		embedding[h.Sum32()%uint32(m.dimensions)]++
	}
	return embedding
}

// Helper methods for testing

func (m *MockEmbeddingService) SetFailNext(fail bool) {
	m.failNext = fail
}

func (m *MockEmbeddingService) SetDimensions(dim int) {
	m.dimensions = dim
}

// EmbedCalls returns how many embedding calls have been made
func (m *MockEmbeddingService) EmbedCalls() int {
	return m.embedCalls
}

// Closed reports whether Close has been called
func (m *MockEmbeddingService) Closed() bool {
	return m.closed
}
