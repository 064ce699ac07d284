package runtime

import (
	"sync"

	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
)

// Services holds references to the currently selected AI services.
// The generation model is selectable per upload, so the engine swaps
// services at runtime. Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	embeddingService  driven.EmbeddingService
	generationService driven.GenerationService
}

// NewServices creates a new Services registry
func NewServices() *Services {
	return &Services{}
}

// EmbeddingService returns the current embedding service (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// GenerationService returns the current generation service (may be nil)
func (s *Services) GenerationService() driven.GenerationService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generationService
}

// SetEmbeddingService updates the embedding service, closing the old one.
func (s *Services) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}
	s.embeddingService = svc
}

// SetGenerationService updates the generation service, closing the old one.
func (s *Services) SetGenerationService(svc driven.GenerationService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generationService != nil {
		_ = s.generationService.Close()
	}
	s.generationService = svc
}

// CanEmbed reports whether an embedding service is configured
func (s *Services) CanEmbed() bool {
	return s.EmbeddingService() != nil
}

// CanGenerate reports whether a generation service is configured
func (s *Services) CanGenerate() bool {
	return s.GenerationService() != nil
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.generationService != nil {
		_ = s.generationService.Close()
		s.generationService = nil
	}
	return nil
}
