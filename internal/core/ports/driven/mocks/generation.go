package mocks

import (
	"context"
	"sync"
)

// MockGenerationService is a controllable GenerationService for testing.
// It can return a canned answer, fail, or block until released to simulate
// a slow model call.
type MockGenerationService struct {
	mu         sync.Mutex
	answer     string
	answerFunc func(prompt string) string
	err        error
	model      string

	blocking chan struct{}
	started  chan struct{}

	prompts []string
}

// NewMockGenerationService creates a new MockGenerationService
func NewMockGenerationService() *MockGenerationService {
	return &MockGenerationService{
		answer: "mock answer",
		model:  "mock-generation-model",
	}
}

func (m *MockGenerationService) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	blocking := m.blocking
	started := m.started
	err := m.err
	answer := m.answer
	answerFunc := m.answerFunc
	m.mu.Unlock()

	if started != nil {
		close(started)
		m.mu.Lock()
		m.started = nil
		m.mu.Unlock()
	}
	if blocking != nil {
		select {
		case <-blocking:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	if answerFunc != nil {
		return answerFunc(prompt), nil
	}
	return answer, nil
}

func (m *MockGenerationService) Model() string {
	return m.model
}

func (m *MockGenerationService) Close() error {
	return nil
}

// Helper methods for testing

// SetAnswer sets the canned answer
func (m *MockGenerationService) SetAnswer(answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answer = answer
}

// SetAnswerFunc derives the answer from the prompt
func (m *MockGenerationService) SetAnswerFunc(fn func(prompt string) string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answerFunc = fn
}

// SetError makes subsequent Generate calls fail
func (m *MockGenerationService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Block makes the next Generate call wait until Unblock. The returned
// channel is closed once the call has entered Generate.
func (m *MockGenerationService) Block() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blocking = make(chan struct{})
	m.started = make(chan struct{})
	return m.started
}

// Unblock releases a blocked Generate call
func (m *MockGenerationService) Unblock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blocking != nil {
		close(m.blocking)
		m.blocking = nil
	}
}

// Prompts returns every prompt passed to Generate
func (m *MockGenerationService) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
