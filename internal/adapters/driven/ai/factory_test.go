package ai

import (
	"errors"
	"testing"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driven/mocks"
)

func TestFactory_CreateEmbeddingService(t *testing.T) {
	f := NewFactory(ProviderDefaults{OpenAIAPIKey: "sk-test"}, nil)

	svc, err := f.CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc == nil {
		t.Fatal("expected a service")
	}
	if _, ok := svc.(*OpenAIEmbedding); !ok {
		t.Errorf("expected an OpenAI adapter, got %T", svc)
	}
}

func TestFactory_CreateEmbeddingService_Cached(t *testing.T) {
	f := NewFactory(ProviderDefaults{OpenAIAPIKey: "sk-test"}, mocks.NewMockEmbeddingCache())

	svc, err := f.CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.(*CachedEmbedding); !ok {
		t.Errorf("expected a cache-wrapped adapter, got %T", svc)
	}
}

func TestFactory_CreateEmbeddingService_Unconfigured(t *testing.T) {
	f := NewFactory(ProviderDefaults{}, nil)

	svc, err := f.CreateEmbeddingService(nil)
	if err != nil || svc != nil {
		t.Errorf("expected (nil, nil) for nil settings, got (%v, %v)", svc, err)
	}

	svc, err = f.CreateEmbeddingService(&domain.EmbeddingSettings{})
	if err != nil || svc != nil {
		t.Errorf("expected (nil, nil) for empty settings, got (%v, %v)", svc, err)
	}
}

func TestFactory_CreateGenerationService(t *testing.T) {
	f := NewFactory(ProviderDefaults{OllamaBaseURL: "http://localhost:11434"}, nil)

	svc, err := f.CreateGenerationService(&domain.GenerationSettings{
		Provider: domain.AIProviderOllama,
		Model:    "llama3",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.(*OllamaGeneration); !ok {
		t.Errorf("expected an Ollama adapter, got %T", svc)
	}
}

func TestFactory_UnknownProvider(t *testing.T) {
	f := NewFactory(ProviderDefaults{}, nil)

	_, err := f.CreateEmbeddingService(&domain.EmbeddingSettings{Provider: "watson"})
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}

	_, err = f.CreateGenerationService(&domain.GenerationSettings{Provider: "watson"})
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}

func TestFactory_DefaultsApplied(t *testing.T) {
	f := NewFactory(ProviderDefaults{OpenAIAPIKey: "sk-from-defaults"}, nil)

	svc, err := f.CreateGenerationService(&domain.GenerationSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "gpt-4o-mini",
	})
	if err != nil {
		t.Fatalf("expected the default API key to apply, got %v", err)
	}
	gen := svc.(*OpenAIGeneration)
	if gen.apiKey != "sk-from-defaults" {
		t.Errorf("expected the default key, got %q", gen.apiKey)
	}
}
