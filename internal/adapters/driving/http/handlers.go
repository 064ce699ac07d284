package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driving"
	"github.com/docquery-labs/docquery-core/internal/extract"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"no document loaded"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// AskRequest is the question payload
// @Description Question about the uploaded document
type AskRequest struct {
	Question string `json:"question" example:"What does the contract say about termination?"`
}

// HistoryResponse wraps the conversation transcript
// @Description Conversation transcript in chronological order
type HistoryResponse struct {
	Turns []domain.ConversationTurn `json:"turns"`
	State string                    `json:"state" example:"indexed"`
}

// ModelsResponse lists the selectable generation models
// @Description Generation models selectable per upload
type ModelsResponse struct {
	Models []domain.ModelOption `json:"models"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin godoc
// @Summary      Login
// @Description  Authenticate with the configured password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or auth disabled"
// @Router       /api/v1/auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.authService == nil || !s.authService.Enabled() {
		writeError(w, http.StatusUnauthorized, "authentication is not enabled")
		return
	}

	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "authentication is not enabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Document conversation endpoints

// handleUploadDocument godoc
// @Summary      Upload a document
// @Description  Uploads a document, replacing the current session. The file is chunked, embedded and indexed; the previous transcript is discarded.
// @Tags         Conversation
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file   formData  file    true   "Document file (.txt, .md, .pdf, .docx)"
// @Param        model  formData  string  false  "Generation model to use for this session"
// @Success      200  {object}  driving.UploadResult
// @Failure      400  {object}  ErrorResponse  "Empty document or bad request"
// @Failure      413  {object}  ErrorResponse  "Document too large"
// @Failure      415  {object}  ErrorResponse  "Unsupported file format"
// @Failure      502  {object}  ErrorResponse  "Embedding service failure"
// @Router       /api/v1/documents [post]
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	engine, err := s.subjectEngine(w, r)
	if err != nil {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "document too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	result, err := engine.UploadDocument(r.Context(), driving.UploadRequest{
		Filename: header.Filename,
		MimeType: extract.DetectMIMEType(header.Filename, header.Header.Get("Content-Type")),
		Data:     data,
		Model:    r.FormValue("model"),
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleAsk godoc
// @Summary      Ask a question
// @Description  Asks a question about the uploaded document. Evidence is retrieved from the index and an answer generated; the turn is appended to the transcript.
// @Tags         Conversation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      AskRequest  true  "Question"
// @Success      200  {object}  driving.Answer
// @Failure      400  {object}  ErrorResponse  "No document loaded or empty question"
// @Failure      409  {object}  ErrorResponse  "A question is already in flight"
// @Failure      502  {object}  ErrorResponse  "Model unavailable"
// @Failure      504  {object}  ErrorResponse  "Generation timed out"
// @Router       /api/v1/ask [post]
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	engine, err := s.subjectEngine(w, r)
	if err != nil {
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question must not be empty")
		return
	}

	answer, err := engine.AskQuestion(r.Context(), req.Question)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// handleHistory godoc
// @Summary      Get conversation history
// @Description  Returns the transcript of the current session in chronological order
// @Tags         Conversation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  HistoryResponse
// @Router       /api/v1/history [get]
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	engine, err := s.subjectEngine(w, r)
	if err != nil {
		return
	}

	turns := engine.History(r.Context())
	if turns == nil {
		turns = []domain.ConversationTurn{}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{
		Turns: turns,
		State: string(engine.State()),
	})
}

// handleModels godoc
// @Summary      List selectable models
// @Description  Returns the generation models that may be selected per upload
// @Tags         Conversation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ModelsResponse
// @Router       /api/v1/models [get]
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	engine, err := s.subjectEngine(w, r)
	if err != nil {
		return
	}

	models := engine.Models()
	if models == nil {
		models = []domain.ModelOption{}
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Models: models})
}

// subjectEngine resolves the caller's engine, writing an error response on
// failure.
func (s *Server) subjectEngine(w http.ResponseWriter, r *http.Request) (driving.EngineService, error) {
	authCtx := GetAuthContext(r.Context())
	subject := ""
	if authCtx != nil {
		subject = authCtx.Subject
	}

	engine, err := s.engineFor(subject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to initialize session")
		return nil, err
	}
	return engine, nil
}

// writeEngineError maps engine errors onto HTTP statuses
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyDocument):
		writeError(w, http.StatusBadRequest, "document contains no extractable text")
	case errors.Is(err, domain.ErrNoDocumentLoaded):
		writeError(w, http.StatusBadRequest, "no document loaded")
	case errors.Is(err, domain.ErrInvalidProvider):
		writeError(w, http.StatusBadRequest, "unknown model or provider")
	case errors.Is(err, domain.ErrDocumentTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "document too large")
	case errors.Is(err, domain.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported file format")
	case errors.Is(err, domain.ErrSessionBusy):
		writeError(w, http.StatusConflict, "a question is already being processed")
	case errors.Is(err, domain.ErrEmbeddingFailure), errors.Is(err, domain.ErrModelUnavailable):
		writeError(w, http.StatusBadGateway, "ai service unavailable")
	case errors.Is(err, domain.ErrGenerationTimeout):
		writeError(w, http.StatusGatewayTimeout, "generation timed out")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
