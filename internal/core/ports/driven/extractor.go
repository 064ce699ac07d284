package driven

// Extractor turns raw uploaded file bytes into plain text
type Extractor interface {
	// Extract returns the plain text content of the file
	Extract(data []byte) (string, error)

	// SupportedTypes returns MIME types this extractor handles.
	// Can include wildcards like "text/*" or specific types.
	SupportedTypes() []string

	// Priority returns the extractor priority (higher = more specific).
	// Format-specific extractors (PDF, DOCX) use 50; generic text uses 10.
	Priority() int
}

// ExtractorRegistry manages text extractors.
// When multiple extractors match a MIME type, the highest priority one is used.
type ExtractorRegistry interface {
	// Get retrieves the best-matching extractor for a MIME type.
	// Returns nil if no extractor is registered for the type.
	Get(mimeType string) Extractor

	// Register registers an extractor
	Register(extractor Extractor)

	// List returns all registered MIME types
	List() []string
}
