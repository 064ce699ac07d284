package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
)

func chunkAt(position int, content string) domain.Chunk {
	return domain.Chunk{DocumentID: "doc-1", Position: position, Content: content}
}

func TestPromptBuilder_Layout(t *testing.T) {
	b := NewPromptBuilder("", 4)
	evidence := []domain.Chunk{chunkAt(3, "third chunk text"), chunkAt(0, "first chunk text")}
	history := []domain.ConversationTurn{
		{Question: "older question", Answer: "older answer"},
		{Question: "newer question", Answer: "newer answer"},
	}

	prompt, err := b.Build("current question", evidence, history, 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(prompt, DefaultSystemInstruction) {
		t.Error("expected system instruction first")
	}
	if !strings.HasSuffix(prompt, "Question: current question\nAnswer:") {
		t.Errorf("expected question last, got tail %q", prompt[len(prompt)-40:])
	}

	// Evidence stays in retrieval rank order, not document position order.
	third := strings.Index(prompt, "third chunk text")
	first := strings.Index(prompt, "first chunk text")
	if third == -1 || first == -1 || third > first {
		t.Error("expected evidence in rank order with the top-ranked chunk first")
	}
	if !strings.Contains(prompt, "[Passage 1, chunk 3]") {
		t.Error("expected passage attribution to its source chunk")
	}

	// History in chronological order, most recent last.
	older := strings.Index(prompt, "older question")
	newer := strings.Index(prompt, "newer question")
	if older == -1 || newer == -1 || older > newer {
		t.Error("expected history with the most recent turn last")
	}
}

func TestPromptBuilder_BudgetNeverExceeded(t *testing.T) {
	b := NewPromptBuilder("", 10)
	evidence := []domain.Chunk{chunkAt(0, strings.Repeat("e", 300)), chunkAt(1, strings.Repeat("f", 300))}
	history := []domain.ConversationTurn{
		{Question: strings.Repeat("q", 200), Answer: strings.Repeat("a", 200)},
	}

	for _, budget := range []int{250, 400, 700, 1200, 5000} {
		prompt, err := b.Build("what?", evidence, history, budget)
		if err != nil {
			t.Fatalf("budget %d: unexpected error: %v", budget, err)
		}
		if len(prompt) > budget {
			t.Errorf("budget %d: prompt has %d chars", budget, len(prompt))
		}
	}
}

func TestPromptBuilder_HistoryTrimmedBeforeEvidence(t *testing.T) {
	b := NewPromptBuilder("", 20)

	longHistory := make([]domain.ConversationTurn, 10)
	for i := range longHistory {
		longHistory[i] = domain.ConversationTurn{
			Question: strings.Repeat("h", 100),
			Answer:   strings.Repeat("i", 100),
		}
	}
	evidence := []domain.Chunk{chunkAt(0, "the single important passage")}

	// A budget that cannot fit the full history but easily fits the evidence:
	// every history turn must go before any evidence does.
	prompt, err := b.Build("q?", evidence, longHistory, 400)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "the single important passage") {
		t.Error("evidence was dropped while history should be trimmed first")
	}
	if strings.Contains(prompt, strings.Repeat("h", 100)) {
		t.Error("expected oldest history to be trimmed")
	}

	// Reverse scenario: lots of evidence, a single short turn. Low-ranked
	// evidence goes only after all history is gone, so with history still
	// present and a tight budget the tail evidence disappears first... but
	// only once every history turn has been dropped.
	manyEvidence := make([]domain.Chunk, 8)
	for i := range manyEvidence {
		manyEvidence[i] = chunkAt(i, strings.Repeat("e", 120))
	}
	shortHistory := []domain.ConversationTurn{{Question: "small q", Answer: "small a"}}

	prompt, err = b.Build("q?", manyEvidence, shortHistory, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(prompt, "small q") {
		t.Error("expected history dropped before evidence under a tight budget")
	}
	if !strings.Contains(prompt, "[Passage 1, chunk 0]") {
		t.Error("expected the top-ranked passage to survive trimming")
	}
}

func TestPromptBuilder_DropsLowestRankedEvidenceLast(t *testing.T) {
	b := NewPromptBuilder("", 0)
	evidence := []domain.Chunk{
		chunkAt(5, strings.Repeat("top", 40)),
		chunkAt(2, strings.Repeat("mid", 40)),
		chunkAt(9, strings.Repeat("low", 40)),
	}

	prompt, err := b.Build("q?", evidence, nil, 450)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(prompt, "toptop") {
		t.Error("top-ranked evidence must survive")
	}
	if strings.Contains(prompt, "lowlow") {
		t.Error("lowest-ranked evidence should be dropped first")
	}
}

func TestPromptBuilder_PromptTooLarge(t *testing.T) {
	b := NewPromptBuilder("", 4)
	_, err := b.Build(strings.Repeat("q", 500), nil, nil, 100)
	if !errors.Is(err, domain.ErrPromptTooLarge) {
		t.Errorf("expected ErrPromptTooLarge, got %v", err)
	}
}

func TestPromptBuilder_InvalidBudget(t *testing.T) {
	b := NewPromptBuilder("", 4)
	_, err := b.Build("q", nil, nil, 0)
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestPromptBuilder_HistoryWindow(t *testing.T) {
	b := NewPromptBuilder("", 2)
	history := []domain.ConversationTurn{
		{Question: "turn-one", Answer: "a"},
		{Question: "turn-two", Answer: "a"},
		{Question: "turn-three", Answer: "a"},
	}

	prompt, err := b.Build("q?", nil, history, 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(prompt, "turn-one") {
		t.Error("expected only the most recent turns within the window")
	}
	if !strings.Contains(prompt, "turn-two") || !strings.Contains(prompt, "turn-three") {
		t.Error("expected the two most recent turns to be kept")
	}
}

func TestPromptBuilder_Deterministic(t *testing.T) {
	b := NewPromptBuilder("custom instruction", 4)
	evidence := []domain.Chunk{chunkAt(1, "alpha"), chunkAt(0, "beta")}
	history := []domain.ConversationTurn{{Question: "q1", Answer: "a1"}}

	p1, _ := b.Build("question", evidence, history, 10000)
	p2, _ := b.Build("question", evidence, history, 10000)
	if p1 != p2 {
		t.Error("expected identical prompts for identical inputs")
	}
	if !strings.HasPrefix(p1, "custom instruction") {
		t.Error("expected the custom system instruction")
	}
}
