package services

import (
	"fmt"
	"strings"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
)

// DefaultSystemInstruction frames the model as answering strictly from the
// supplied document content.
const DefaultSystemInstruction = "Based on the following document content, " +
	"answer the question clearly and accurately. Use only the information " +
	"provided in the document."

// PromptBuilder assembles a bounded-size prompt from retrieved evidence,
// recent conversation turns and the current question.
type PromptBuilder struct {
	systemInstruction string
	maxHistoryTurns   int
}

// NewPromptBuilder creates a PromptBuilder. An empty instruction selects
// the default; maxHistoryTurns bounds how many recent turns are considered
// before any budget trimming.
func NewPromptBuilder(systemInstruction string, maxHistoryTurns int) *PromptBuilder {
	if systemInstruction == "" {
		systemInstruction = DefaultSystemInstruction
	}
	if maxHistoryTurns < 0 {
		maxHistoryTurns = 0
	}
	return &PromptBuilder{
		systemInstruction: systemInstruction,
		maxHistoryTurns:   maxHistoryTurns,
	}
}

// Build renders the prompt and enforces maxPromptChars. When over budget it
// drops oldest history turns first, then lowest-ranked evidence passages in
// reverse rank order. The question itself is never truncated; if the system
// instruction plus the question alone exceed the budget the configuration is
// broken and ErrPromptTooLarge is returned.
func (b *PromptBuilder) Build(question string, evidence []domain.Chunk, history []domain.ConversationTurn, maxPromptChars int) (string, error) {
	if maxPromptChars <= 0 {
		return "", fmt.Errorf("%w: max prompt chars must be positive, got %d", domain.ErrInvalidConfig, maxPromptChars)
	}

	if len(b.render(question, nil, nil)) > maxPromptChars {
		return "", fmt.Errorf("%w: question and system instruction need more than %d chars", domain.ErrPromptTooLarge, maxPromptChars)
	}

	if len(history) > b.maxHistoryTurns {
		history = history[len(history)-b.maxHistoryTurns:]
	}

	for {
		prompt := b.render(question, evidence, history)
		if len(prompt) <= maxPromptChars {
			return prompt, nil
		}
		switch {
		case len(history) > 0:
			history = history[1:]
		case len(evidence) > 0:
			evidence = evidence[:len(evidence)-1]
		default:
			// Unreachable given the minimal-prompt check above.
			return prompt[:maxPromptChars], nil
		}
	}
}

// render produces the deterministic prompt layout: system instruction,
// evidence in retrieval rank order, history with the most recent turn last,
// then the question.
func (b *PromptBuilder) render(question string, evidence []domain.Chunk, history []domain.ConversationTurn) string {
	var sb strings.Builder
	sb.WriteString(b.systemInstruction)
	sb.WriteString("\n")

	if len(evidence) > 0 {
		sb.WriteString("\nDocument content:\n")
		for rank, chunk := range evidence {
			fmt.Fprintf(&sb, "\n[Passage %d, chunk %d]\n%s\n", rank+1, chunk.Position, chunk.Content)
		}
	}

	if len(history) > 0 {
		sb.WriteString("\nConversation so far:\n")
		for _, turn := range history {
			fmt.Fprintf(&sb, "Q: %s\nA: %s\n", turn.Question, turn.Answer)
		}
	}

	fmt.Fprintf(&sb, "\nQuestion: %s\nAnswer:", question)
	return sb.String()
}
