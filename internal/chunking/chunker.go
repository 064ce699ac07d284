package chunking

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
)

// Config configures the chunker behavior.
type Config struct {
	// ChunkSize is the maximum characters per chunk
	ChunkSize int

	// Overlap is the character overlap between consecutive chunks
	Overlap int

	// PreserveSentences pulls the window end back to the latest sentence,
	// paragraph or word boundary within the last 100 characters
	PreserveSentences bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:         1000,
		Overlap:           200,
		PreserveSentences: true,
	}
}

// Validate checks the chunking preconditions.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, c.ChunkSize)
	}
	if c.Overlap < 0 || c.Overlap >= c.ChunkSize {
		return fmt.Errorf("%w: overlap must be in [0, chunk size), got overlap=%d chunk size=%d",
			domain.ErrInvalidConfig, c.Overlap, c.ChunkSize)
	}
	return nil
}

// Chunker splits document text into overlapping chunks by sliding a
// character window of ChunkSize, advancing by ChunkSize-Overlap each step.
// Splitting is character-based, matching the offsets recorded in each chunk.
type Chunker struct {
	config Config
}

// New creates a chunker, validating the config.
func New(config Config) (*Chunker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{config: config}, nil
}

// Chunk splits text into chunks labeled with monotonically increasing
// positions starting at 0. Empty text yields zero chunks; text shorter than
// ChunkSize yields exactly one chunk spanning the whole text. Deterministic
// for the same input.
func (c *Chunker) Chunk(documentID, text string) []domain.Chunk {
	if len(text) == 0 {
		return nil
	}

	if len(text) <= c.config.ChunkSize {
		return []domain.Chunk{{
			DocumentID: documentID,
			Position:   0,
			StartChar:  0,
			EndChar:    len(text),
			Content:    text,
		}}
	}

	var chunks []domain.Chunk
	start := 0
	position := 0

	for start < len(text) {
		end := start + c.config.ChunkSize
		if end > len(text) {
			end = len(text)
		}

		if end < len(text) && c.config.PreserveSentences {
			breakPoint := findBreakPoint(text, start, end)
			// Only accept a boundary that still advances past the overlap,
			// otherwise the next window would not make progress.
			if breakPoint > start+c.config.Overlap {
				end = breakPoint
			}
		}

		chunks = append(chunks, domain.Chunk{
			DocumentID: documentID,
			Position:   position,
			StartChar:  start,
			EndChar:    end,
			Content:    text[start:end],
		})
		position++

		if end >= len(text) {
			break
		}
		start = end - c.config.Overlap
	}

	return chunks
}

// findBreakPoint finds a natural break point within the last 100 characters
// of the window.
func findBreakPoint(text string, start, maxEnd int) int {
	searchStart := maxEnd - 100
	if searchStart < start {
		searchStart = start
	}
	window := text[searchStart:maxEnd]

	// Paragraph boundary first
	if idx := strings.LastIndex(window, "\n\n"); idx != -1 {
		return searchStart + idx + 2
	}

	// Then sentence boundary
	sentenceEnders := []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}
	bestIdx := -1
	for _, ender := range sentenceEnders {
		if idx := strings.LastIndex(window, ender); idx != -1 {
			endPos := idx + len(ender)
			if endPos > bestIdx {
				bestIdx = endPos
			}
		}
	}
	if bestIdx > 0 {
		return searchStart + bestIdx
	}

	// Then word boundary
	if idx := strings.LastIndex(window, " "); idx != -1 {
		return searchStart + idx + 1
	}

	return maxEnd
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses whitespace runs to single spaces and trims
// the ends, as extracted document text routinely carries layout artifacts.
// Chunk offsets refer to the normalized text.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
