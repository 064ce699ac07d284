package ai

import (
	"fmt"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// ProviderDefaults carries per-provider credentials and endpoints so that
// settings created at runtime (model switches) only need to name a provider
// and model.
type ProviderDefaults struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OllamaBaseURL string
}

// Factory creates AI services based on configuration
type Factory struct {
	defaults ProviderDefaults
	cache    driven.EmbeddingCache
}

// NewFactory creates a new AI service factory. cache may be nil to disable
// embedding caching.
func NewFactory(defaults ProviderDefaults, cache driven.EmbeddingCache) *Factory {
	return &Factory{defaults: defaults, cache: cache}
}

// CreateEmbeddingService creates an embedding service from settings.
// Returns (nil, nil) when the settings are absent or unconfigured.
func (f *Factory) CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.EmbeddingService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderOpenAI:
		svc, err = NewOpenAIEmbedding(
			firstNonEmpty(settings.APIKey, f.defaults.OpenAIAPIKey),
			settings.Model,
			firstNonEmpty(settings.BaseURL, f.defaults.OpenAIBaseURL),
		)
	case domain.AIProviderOllama:
		svc, err = NewOllamaEmbedding(
			firstNonEmpty(settings.BaseURL, f.defaults.OllamaBaseURL),
			settings.Model,
		)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		svc = NewCachedEmbedding(svc, f.cache)
	}
	return svc, nil
}

// CreateGenerationService creates a text generation service from settings.
// Returns (nil, nil) when the settings are absent or unconfigured.
func (f *Factory) CreateGenerationService(settings *domain.GenerationSettings) (driven.GenerationService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return NewOpenAIGeneration(
			firstNonEmpty(settings.APIKey, f.defaults.OpenAIAPIKey),
			settings.Model,
			firstNonEmpty(settings.BaseURL, f.defaults.OpenAIBaseURL),
		)
	case domain.AIProviderOllama:
		return NewOllamaGeneration(
			firstNonEmpty(settings.BaseURL, f.defaults.OllamaBaseURL),
			settings.Model,
		)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
