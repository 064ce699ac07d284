package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionState is the lifecycle state of a conversation session.
type SessionState string

const (
	// SessionStateEmpty means no document has been indexed yet
	SessionStateEmpty SessionState = "empty"

	// SessionStateIndexed means a document is indexed and questions can be asked
	SessionStateIndexed SessionState = "indexed"
)

// ConversationSession binds one document's index to its conversation
// transcript. A new upload always produces a fresh session; the old one is
// discarded entirely, though in-flight readers may keep their own reference
// to it until they finish.
type ConversationSession struct {
	ID        string
	Document  *Document
	Index     Searcher
	CreatedAt time.Time

	mu    sync.RWMutex
	turns []ConversationTurn
}

// NewConversationSession creates an indexed session with an empty transcript.
func NewConversationSession(doc *Document, index Searcher) *ConversationSession {
	return &ConversationSession{
		ID:        uuid.NewString(),
		Document:  doc,
		Index:     index,
		CreatedAt: time.Now(),
	}
}

// State returns the session state. A nil session is Empty.
func (s *ConversationSession) State() SessionState {
	if s == nil || s.Document == nil || s.Index == nil {
		return SessionStateEmpty
	}
	return SessionStateIndexed
}

// AppendTurn appends a completed question/answer turn to the transcript.
func (s *ConversationSession) AppendTurn(turn ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
}

// History returns a copy of the transcript in chronological order.
func (s *ConversationSession) History() []ConversationTurn {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// TurnCount returns the number of recorded turns.
func (s *ConversationSession) TurnCount() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}
