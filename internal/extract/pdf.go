package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Extractor = (*PDFExtractor)(nil)

// PDFExtractor extracts plain text from PDF uploads. When structured text
// extraction fails (scanned or malformed files) it falls back to harvesting
// printable runes from the raw bytes rather than rejecting the upload.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty pdf file", domain.ErrEmptyDocument)
	}

	if reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err == nil {
		if plain, err := reader.GetPlainText(); err == nil {
			if out, err := io.ReadAll(plain); err == nil && len(bytes.TrimSpace(out)) > 0 {
				return strings.TrimSpace(string(out)), nil
			}
		}
	}

	text := strings.TrimSpace(extractPrintableText(data))
	if text == "" {
		return "", fmt.Errorf("%w: no extractable text in pdf", domain.ErrUnsupportedFormat)
	}
	return text, nil
}

func (e *PDFExtractor) SupportedTypes() []string {
	return []string{"application/pdf"}
}

func (e *PDFExtractor) Priority() int {
	return 50 // Format-specific
}

// extractPrintableText keeps printable runes and common whitespace,
// dropping everything else.
func extractPrintableText(in []byte) string {
	var out strings.Builder
	for len(in) > 0 {
		r, size := utf8.DecodeRune(in)
		if r == utf8.RuneError && size == 1 {
			if b := in[0]; isPrintableASCII(b) {
				out.WriteByte(b)
			}
			in = in[1:]
			continue
		}
		in = in[size:]
		if isPrintableRune(r) {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func isPrintableASCII(b byte) bool {
	return b == '\n' || b == '\r' || b == '\t' || (b >= 32 && b < 127)
}

func isPrintableRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return true
	}
	return r >= 32 && r != 127
}
