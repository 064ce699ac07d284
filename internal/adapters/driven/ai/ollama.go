package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
)

// Ensure implementations satisfy their ports
var (
	_ driven.EmbeddingService  = (*OllamaEmbedding)(nil)
	_ driven.GenerationService = (*OllamaGeneration)(nil)
)

// OllamaEmbedding implements EmbeddingService against a local Ollama
// instance. Ollama does not publish model dimensions up front, so the
// dimension is learned from the first embedding returned.
type OllamaEmbedding struct {
	baseURL string
	model   string
	client  *http.Client

	mu         sync.Mutex
	dimensions int
}

// NewOllamaEmbedding creates a new Ollama embedding service
func NewOllamaEmbedding(baseURL, model string) (driven.EmbeddingService, error) {
	if model == "" {
		return nil, fmt.Errorf("Ollama embedding model is required")
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	return &OllamaEmbedding{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}

// Embed generates embeddings for multiple texts. The Ollama embeddings
// endpoint takes one prompt per call, so texts are embedded sequentially.
func (e *OllamaEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := e.embedOne(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = vector
	}
	return embeddings, nil
}

// EmbedQuery generates an embedding for a search query
func (e *OllamaEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return e.embedOne(ctx, query)
}

// Dimensions returns the embedding dimension size, or 0 before the first
// successful embedding call.
func (e *OllamaEmbedding) Dimensions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dimensions
}

// Model returns the model name being used
func (e *OllamaEmbedding) Model() string {
	return e.model
}

// Close releases resources held by the embedding service
func (e *OllamaEmbedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

func (e *OllamaEmbedding) embedOne(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(ollamaEmbeddingRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", domain.ErrEmbeddingFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrEmbeddingFailure, err)
	}

	var embResp ollamaEmbeddingResponse
	if err := json.Unmarshal(respBody, &embResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrEmbeddingFailure, err)
	}
	if embResp.Error != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmbeddingFailure, embResp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrEmbeddingFailure, resp.StatusCode)
	}
	if len(embResp.Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding returned", domain.ErrEmbeddingFailure)
	}

	e.mu.Lock()
	if e.dimensions == 0 {
		e.dimensions = len(embResp.Embedding)
	}
	e.mu.Unlock()

	return embResp.Embedding, nil
}

// OllamaGeneration implements GenerationService against a local Ollama
// instance using the non-streaming generate endpoint.
type OllamaGeneration struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaGeneration creates a new Ollama generation service
func NewOllamaGeneration(baseURL, model string) (driven.GenerationService, error) {
	if model == "" {
		return nil, fmt.Errorf("Ollama generation model is required")
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	return &OllamaGeneration{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Generate produces a completion for the prompt
func (g *OllamaGeneration) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{Model: g.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", fmt.Errorf("%w: %v", domain.ErrGenerationTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", domain.ErrModelUnavailable, err)
	}

	var genResp ollamaGenerateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("%w: failed to parse response: %v", domain.ErrModelUnavailable, err)
	}
	if genResp.Error != "" {
		return "", fmt.Errorf("%w: %s", domain.ErrModelUnavailable, genResp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrModelUnavailable, resp.StatusCode)
	}

	return genResp.Response, nil
}

// Model returns the model name being used
func (g *OllamaGeneration) Model() string {
	return g.model
}

// Close releases resources held by the generation service
func (g *OllamaGeneration) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
