package driven

import (
	"github.com/docquery-labs/docquery-core/internal/core/domain"
)

// AIServiceFactory creates AI services from settings.
// Model choice is a per-session configuration, not a code change: the
// engine asks the factory for a new service when an upload selects a
// different model.
type AIServiceFactory interface {
	// CreateEmbeddingService creates an embedding service from settings.
	// Returns (nil, nil) when settings are absent or unconfigured.
	CreateEmbeddingService(settings *domain.EmbeddingSettings) (EmbeddingService, error)

	// CreateGenerationService creates a generation service from settings.
	// Returns (nil, nil) when settings are absent or unconfigured.
	CreateGenerationService(settings *domain.GenerationSettings) (GenerationService, error)
}
