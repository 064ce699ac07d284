package domain

import "time"

// Document is a single uploaded document after text extraction.
// Immutable once ingested; a new upload replaces it wholesale.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type"`
	Text       string    `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Chunk is a contiguous span of a document used as the unit of retrieval.
// StartChar/EndChar are character offsets into the document text.
type Chunk struct {
	DocumentID string `json:"document_id"`
	Position   int    `json:"position"`
	StartChar  int    `json:"start_char"`
	EndChar    int    `json:"end_char"`
	Content    string `json:"content"`
}

// EmbeddedChunk pairs a chunk with its embedding vector.
// All vectors in one index share the embedder's declared dimension.
type EmbeddedChunk struct {
	Chunk
	Vector []float32 `json:"vector"`
}

// ScoredChunk is a chunk ranked by similarity to a query vector.
type ScoredChunk struct {
	Chunk *Chunk  `json:"chunk"`
	Score float64 `json:"score"`
}

// ConversationTurn is one question/answer exchange, with the chunk
// positions used as evidence. Turns are append-only.
type ConversationTurn struct {
	Question         string    `json:"question"`
	Answer           string    `json:"answer"`
	EvidenceChunkIDs []int     `json:"evidence_chunk_ids"`
	CreatedAt        time.Time `json:"created_at"`
}

// Searcher is the read side of a built vector index.
// Implementations are immutable after construction and safe for
// concurrent Search calls.
type Searcher interface {
	// Search returns up to k chunks ordered by descending similarity
	// to the query vector. Ties are broken by ascending chunk position.
	Search(query []float32, k int) []ScoredChunk

	// Len returns the number of indexed chunks.
	Len() int

	// Dimensions returns the vector dimension of the index.
	Dimensions() int
}
