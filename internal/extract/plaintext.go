package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Extractor = (*PlaintextExtractor)(nil)

// PlaintextExtractor handles plain text uploads. Bytes that are not valid
// UTF-8 are decoded as Latin-1, which covers the common legacy-encoded
// text file without guessing at charsets.
type PlaintextExtractor struct{}

func (e *PlaintextExtractor) Extract(data []byte) (string, error) {
	var text string
	if utf8.Valid(data) {
		text = string(data)
	} else {
		text = decodeLatin1(data)
	}

	// Normalize line endings
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text), nil
}

func (e *PlaintextExtractor) SupportedTypes() []string {
	return []string{"text/plain", "text/*", "application/json", "text/markdown"}
}

func (e *PlaintextExtractor) Priority() int {
	return 10 // Generic text handling
}

// decodeLatin1 maps each byte to the code point of the same value.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
