package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
)

func TestNewOllamaEmbedding_RequiresModel(t *testing.T) {
	if _, err := NewOllamaEmbedding("", ""); err == nil {
		t.Error("expected error for empty model")
	}
}

func TestOllamaEmbedding_Embed(t *testing.T) {
	var prompts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("expected /api/embeddings path, got %s", r.URL.Path)
		}
		var req ollamaEmbeddingRequest
		json.NewDecoder(r.Body).Decode(&req)
		prompts = append(prompts, req.Prompt)
		json.NewEncoder(w).Encode(ollamaEmbeddingResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	svc, err := NewOllamaEmbedding(server.URL, "nomic-embed-text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if svc.Dimensions() != 0 {
		t.Errorf("expected unknown dimensions before first call, got %d", svc.Dimensions())
	}

	result, err := svc.Embed(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 embeddings, got %d", len(result))
	}
	if len(prompts) != 2 || prompts[0] != "one" || prompts[1] != "two" {
		t.Errorf("expected sequential per-text calls, got %v", prompts)
	}
	if svc.Dimensions() != 3 {
		t.Errorf("expected dimensions learned from the response, got %d", svc.Dimensions())
	}
}

func TestOllamaEmbedding_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaEmbeddingResponse{Error: "model not found"})
	}))
	defer server.Close()

	svc, _ := NewOllamaEmbedding(server.URL, "missing-model")
	_, err := svc.EmbedQuery(context.Background(), "query")
	if !errors.Is(err, domain.ErrEmbeddingFailure) {
		t.Errorf("expected ErrEmbeddingFailure, got %v", err)
	}
}

func TestNewOllamaGeneration_RequiresModel(t *testing.T) {
	if _, err := NewOllamaGeneration("", ""); err == nil {
		t.Error("expected error for empty model")
	}
}

func TestOllamaGeneration_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("expected /api/generate path, got %s", r.URL.Path)
		}
		var req ollamaGenerateRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Stream {
			t.Error("expected streaming disabled")
		}
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "generated text", Done: true})
	}))
	defer server.Close()

	svc, err := NewOllamaGeneration(server.URL, "llama3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answer, err := svc.Generate(context.Background(), "a prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "generated text" {
		t.Errorf("expected %q, got %q", "generated text", answer)
	}
}

func TestOllamaGeneration_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Error: "out of memory"})
	}))
	defer server.Close()

	svc, _ := NewOllamaGeneration(server.URL, "llama3")
	_, err := svc.Generate(context.Background(), "a prompt")
	if !errors.Is(err, domain.ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}
