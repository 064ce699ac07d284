package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
	"github.com/docquery-labs/docquery-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Extractor = (*DOCXExtractor)(nil)

// DOCXExtractor extracts text from DOCX uploads. A .docx file is a zip
// archive whose word/document.xml holds the text inside <w:t> elements,
// grouped into <w:p> paragraphs.
type DOCXExtractor struct{}

func (e *DOCXExtractor) Extract(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: not a docx archive: %v", domain.ErrUnsupportedFormat, err)
	}

	var doc *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("%w: docx archive has no word/document.xml", domain.ErrUnsupportedFormat)
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}
	defer rc.Close()

	text, err := extractDocumentXML(rc)
	if err != nil {
		return "", fmt.Errorf("%w: malformed docx xml: %v", domain.ErrUnsupportedFormat, err)
	}
	return strings.TrimSpace(text), nil
}

func (e *DOCXExtractor) SupportedTypes() []string {
	return []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
}

func (e *DOCXExtractor) Priority() int {
	return 50 // Format-specific
}

// extractDocumentXML streams through the XML, collecting character data
// inside w:t elements and emitting a newline at each paragraph end.
func extractDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var sb strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			case "tab":
				sb.WriteString("\t")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
