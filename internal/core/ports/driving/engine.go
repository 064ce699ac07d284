package driving

import (
	"context"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
)

// UploadRequest carries an uploaded document into the engine.
// RawText takes precedence when set; otherwise Data is run through the
// extractor registry using MimeType.
type UploadRequest struct {
	Filename string
	MimeType string
	Data     []byte
	RawText  string

	// Model optionally selects the generation model for this session.
	// Must name one of the configured model options.
	Model string
}

// UploadResult describes the freshly indexed session
type UploadResult struct {
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	ChunkCount int    `json:"chunk_count"`
	Model      string `json:"model"`
}

// Answer is the engine's response to a question
type Answer struct {
	Answer           string                  `json:"answer"`
	EvidenceChunkIDs []int                   `json:"evidence_chunk_ids"`
	Turn             domain.ConversationTurn `json:"turn"`
}

// EngineService is the driving port of the RAG engine. One instance owns
// exactly one live conversation session; the caller creates more instances
// for multi-user isolation.
type EngineService interface {
	// UploadDocument extracts, chunks, embeds and indexes a document,
	// replacing any existing session and discarding its transcript.
	UploadDocument(ctx context.Context, req UploadRequest) (*UploadResult, error)

	// AskQuestion retrieves evidence for the question, generates an answer
	// conditioned on it and appends a turn to the transcript. At most one
	// ask is in flight per session; concurrent calls fail with
	// domain.ErrSessionBusy.
	AskQuestion(ctx context.Context, question string) (*Answer, error)

	// History returns the transcript of the live session in order
	History(ctx context.Context) []domain.ConversationTurn

	// State returns the session lifecycle state
	State() domain.SessionState

	// Models returns the generation models selectable per upload
	Models() []domain.ModelOption
}
