package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrEmptyDocument indicates the extracted text is empty or whitespace-only
	ErrEmptyDocument = errors.New("document is empty")

	// ErrDocumentTooLarge indicates the document produced more chunks than the configured ceiling
	ErrDocumentTooLarge = errors.New("document too large")

	// ErrInvalidConfig indicates an invalid engine configuration (e.g. overlap >= chunk size)
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoDocumentLoaded indicates a question was asked before any document was uploaded
	ErrNoDocumentLoaded = errors.New("no document loaded")

	// ErrSessionBusy indicates another question is already in flight on this session
	ErrSessionBusy = errors.New("session busy")

	// ErrEmbeddingFailure indicates the embedding service call failed
	ErrEmbeddingFailure = errors.New("embedding failure")

	// ErrModelUnavailable indicates the generation service could not be reached
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrGenerationTimeout indicates the generation call exceeded its deadline
	ErrGenerationTimeout = errors.New("generation timeout")

	// ErrPromptTooLarge indicates the question plus the system instruction alone exceed the prompt budget
	ErrPromptTooLarge = errors.New("prompt too large")

	// ErrEmptyIndex indicates an index build was attempted with zero chunks
	ErrEmptyIndex = errors.New("empty index")

	// ErrDimensionMismatch indicates embedding vectors disagree in dimension
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrUnsupportedFormat indicates no extractor is registered for the file type
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidProvider indicates an unknown AI provider or model was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidCredentials indicates a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrUnauthorized indicates authentication failed or is missing
	ErrUnauthorized = errors.New("unauthorized")
)
