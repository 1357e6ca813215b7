package domain

import "time"

// Document represents a stored document.
// Its text lives in its chunks; the document row only carries identity
// and the cached summary.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Name is the user-chosen identifier. It is unique across live documents.
	Name string

	// CreatedAt is when the document was first stored.
	CreatedAt time.Time

	// Summary is the cached summary, nil when none has been saved.
	Summary *string

	// ChunkCount is the number of stored chunks. Populated by listings.
	ChunkCount int
}

// HasSummary reports whether a non-empty summary is cached.
func (d *Document) HasSummary() bool {
	return d.Summary != nil && *d.Summary != ""
}

// Chunk represents a searchable unit within a document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Index is the zero-based position in reading order.
	// Indices of a document's chunks are always 0..N-1.
	Index int

	// Content is the text content of this chunk.
	Content string

	// Tokens is the tokenised content used for ranking.
	// Always derived from Content, never set independently.
	Tokens []string
}

// IngestResult describes the outcome of storing a document's text.
type IngestResult struct {
	// DocumentID is the id of the created or existing document.
	DocumentID string

	// Name is the document name.
	Name string

	// ChunkCount is the number of chunks stored.
	ChunkCount int
}
