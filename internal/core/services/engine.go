package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docquery-labs/docquery-core/internal/chunking"
	"github.com/docquery-labs/docquery-core/internal/core/domain"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driving"
	"github.com/docquery-labs/docquery-core/internal/runtime"
)

// Ensure engineService implements EngineService
var _ driving.EngineService = (*engineService)(nil)

// EngineConfig configures one engine instance
type EngineConfig struct {
	Retriever         RetrieverConfig
	MaxPromptChars    int
	MaxHistoryTurns   int
	SystemInstruction string
}

// DefaultEngineConfig returns sensible defaults
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Retriever:       DefaultRetrieverConfig(),
		MaxPromptChars:  8000,
		MaxHistoryTurns: 6,
	}
}

// engineService implements the EngineService interface. It owns exactly one
// live conversation session; uploading replaces the session wholesale while
// any in-flight ask keeps its own reference to the session it started with.
type engineService struct {
	retriever  *Retriever
	prompts    *PromptBuilder
	services   *runtime.Services
	factory    driven.AIServiceFactory
	extractors driven.ExtractorRegistry
	models     []domain.ModelOption
	config     EngineConfig

	// mu guards the session pointer; askMu serializes asks. TryLock on
	// askMu implements the documented reject-with-SessionBusy policy.
	mu      sync.RWMutex
	askMu   sync.Mutex
	session *domain.ConversationSession
}

// NewEngineService creates an EngineService. models is the allow-list of
// generation models selectable per upload; it may be empty, in which case
// uploads cannot switch models.
func NewEngineService(
	config EngineConfig,
	services *runtime.Services,
	factory driven.AIServiceFactory,
	extractors driven.ExtractorRegistry,
	models []domain.ModelOption,
) (driving.EngineService, error) {
	retriever, err := NewRetriever(config.Retriever)
	if err != nil {
		return nil, err
	}
	if config.MaxPromptChars <= 0 {
		return nil, fmt.Errorf("%w: max prompt chars must be positive, got %d", domain.ErrInvalidConfig, config.MaxPromptChars)
	}
	return &engineService{
		retriever:  retriever,
		prompts:    NewPromptBuilder(config.SystemInstruction, config.MaxHistoryTurns),
		services:   services,
		factory:    factory,
		extractors: extractors,
		models:     models,
		config:     config,
	}, nil
}

// UploadDocument extracts, chunks, embeds and indexes the document. Valid
// from any state; always yields a fresh session with an empty transcript.
func (e *engineService) UploadDocument(ctx context.Context, req driving.UploadRequest) (*driving.UploadResult, error) {
	text := req.RawText
	if text == "" && len(req.Data) > 0 {
		extracted, err := e.extractText(req.Data, req.MimeType)
		if err != nil {
			return nil, err
		}
		text = extracted
	}

	text = chunking.NormalizeWhitespace(text)
	if text == "" {
		return nil, domain.ErrEmptyDocument
	}

	if req.Model != "" {
		if err := e.selectModel(req.Model); err != nil {
			return nil, err
		}
	}

	embedder := e.services.EmbeddingService()
	if embedder == nil {
		return nil, fmt.Errorf("%w: no embedding service configured", domain.ErrEmbeddingFailure)
	}

	doc := &domain.Document{
		ID:         uuid.NewString(),
		Filename:   req.Filename,
		MimeType:   req.MimeType,
		Text:       text,
		UploadedAt: time.Now(),
	}

	idx, err := e.retriever.Index(ctx, embedder, doc)
	if err != nil {
		return nil, err
	}

	session := domain.NewConversationSession(doc, idx)
	e.mu.Lock()
	e.session = session
	e.mu.Unlock()

	model := ""
	if gen := e.services.GenerationService(); gen != nil {
		model = gen.Model()
	}

	return &driving.UploadResult{
		DocumentID: doc.ID,
		Filename:   doc.Filename,
		ChunkCount: idx.Len(),
		Model:      model,
	}, nil
}

// AskQuestion retrieves evidence, generates an answer and appends a turn.
// Rejected with ErrSessionBusy while another ask is in flight; a failed ask
// never leaves a half-formed turn in the transcript.
func (e *engineService) AskQuestion(ctx context.Context, question string) (*driving.Answer, error) {
	question = strings.TrimSpace(question)

	if !e.askMu.TryLock() {
		return nil, domain.ErrSessionBusy
	}
	defer e.askMu.Unlock()

	// Capture the session; an upload during generation swaps the pointer
	// but this ask keeps working against the index it started with.
	e.mu.RLock()
	session := e.session
	e.mu.RUnlock()

	if session.State() != domain.SessionStateIndexed {
		return nil, domain.ErrNoDocumentLoaded
	}

	embedder := e.services.EmbeddingService()
	if embedder == nil {
		return nil, fmt.Errorf("%w: no embedding service configured", domain.ErrEmbeddingFailure)
	}
	generator := e.services.GenerationService()
	if generator == nil {
		return nil, fmt.Errorf("%w: no generation service configured", domain.ErrModelUnavailable)
	}

	evidence, err := e.retriever.Search(ctx, embedder, session.Index, question, e.config.Retriever.TopK)
	if err != nil {
		return nil, err
	}

	prompt, err := e.prompts.Build(question, evidence, session.History(), e.config.MaxPromptChars)
	if err != nil {
		return nil, err
	}

	answer, err := generator.Generate(ctx, prompt)
	if err != nil {
		return nil, classifyGenerationError(err)
	}

	evidenceIDs := make([]int, len(evidence))
	for i, chunk := range evidence {
		evidenceIDs[i] = chunk.Position
	}

	turn := domain.ConversationTurn{
		Question:         question,
		Answer:           answer,
		EvidenceChunkIDs: evidenceIDs,
		CreatedAt:        time.Now(),
	}
	session.AppendTurn(turn)

	return &driving.Answer{
		Answer:           answer,
		EvidenceChunkIDs: evidenceIDs,
		Turn:             turn,
	}, nil
}

// History returns the live session's transcript in order
func (e *engineService) History(ctx context.Context) []domain.ConversationTurn {
	e.mu.RLock()
	session := e.session
	e.mu.RUnlock()
	return session.History()
}

// State returns the session lifecycle state
func (e *engineService) State() domain.SessionState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session.State()
}

// Models returns the generation models selectable per upload
func (e *engineService) Models() []domain.ModelOption {
	out := make([]domain.ModelOption, len(e.models))
	copy(out, e.models)
	return out
}

// extractText runs the uploaded bytes through the extractor registry
func (e *engineService) extractText(data []byte, mimeType string) (string, error) {
	if e.extractors == nil {
		return "", fmt.Errorf("%w: no extractors configured", domain.ErrUnsupportedFormat)
	}
	extractor := e.extractors.Get(mimeType)
	if extractor == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, mimeType)
	}
	return extractor.Extract(data)
}

// selectModel switches the generation service to a model from the
// configured allow-list.
func (e *engineService) selectModel(name string) error {
	if gen := e.services.GenerationService(); gen != nil && gen.Model() == name {
		return nil
	}
	for _, option := range e.models {
		if option.Name != name {
			continue
		}
		svc, err := e.factory.CreateGenerationService(&domain.GenerationSettings{
			Provider: option.Provider,
			Model:    option.Name,
		})
		if err != nil {
			return err
		}
		e.services.SetGenerationService(svc)
		return nil
	}
	return fmt.Errorf("%w: model %q is not in the configured list", domain.ErrInvalidProvider, name)
}

// classifyGenerationError maps raw generation failures onto the engine's
// error taxonomy. Deadline errors become GenerationTimeout; anything not
// already classified becomes ModelUnavailable.
func classifyGenerationError(err error) error {
	switch {
	case errors.Is(err, domain.ErrGenerationTimeout), errors.Is(err, domain.ErrModelUnavailable):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", domain.ErrGenerationTimeout, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
}
