package extract

import (
	"path/filepath"
	"strings"
)

// extensionTypes maps the file extensions the engine accepts to their MIME
// types. Legacy .doc is deliberately absent: its binary format needs a
// dedicated parser and uploads are rejected as unsupported.
var extensionTypes = map[string]string{
	".txt":  "text/plain",
	".text": "text/plain",
	".md":   "text/markdown",
	".json": "application/json",
	".csv":  "text/csv",
	".log":  "text/plain",
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// DetectMIMEType resolves a MIME type for the upload. An explicit declared
// type wins unless it is the browser catch-all, in which case the filename
// extension decides.
func DetectMIMEType(filename, declared string) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if idx := strings.Index(declared, ";"); idx != -1 {
		declared = strings.TrimSpace(declared[:idx])
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if mimeType, ok := extensionTypes[ext]; ok {
		return mimeType
	}
	if declared != "" {
		return declared
	}
	return "application/octet-stream"
}
