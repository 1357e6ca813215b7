package driven

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// DocumentStore persists documents, their chunks and cached summaries.
// Backed by SQLite for durable storage.
//
// Every method is transactionally scoped: it either fully applies or has
// no effect. Readers never observe a half-applied chunk replacement.
type DocumentStore interface {
	// Upsert creates the named document if absent and returns its id.
	// An existing document is left untouched and its id returned.
	Upsert(ctx context.Context, name string) (string, error)

	// ReplaceChunks deletes every chunk of the document and stores the
	// payloads as chunks 0..N-1. Payloads empty after trimming are skipped.
	// Returns the number of chunks stored, or domain.ErrNotFound for an
	// unknown document id.
	ReplaceChunks(ctx context.Context, documentID string, payloads []domain.ChunkPayload) (int, error)

	// GetDocument retrieves a document by name.
	GetDocument(ctx context.Context, name string) (*domain.Document, error)

	// ListDocuments returns all documents, most recently created first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// GetFullText returns chunk contents in index order joined by blank lines.
	// Returns domain.ErrNotFound for an unknown document.
	GetFullText(ctx context.Context, name string) (string, error)

	// GetChunks returns the document's chunks in index order.
	// Unknown documents yield an empty slice.
	GetChunks(ctx context.Context, name string) ([]domain.Chunk, error)

	// GetChunkByIndex returns the content of one chunk.
	// Returns domain.ErrNotFound when the document or index does not exist.
	GetChunkByIndex(ctx context.Context, name string, index int) (string, error)

	// SetSummary stores the summary, or clears it when summary is nil.
	// Unknown documents are ignored.
	SetSummary(ctx context.Context, name string, summary *string) error

	// GetSummary returns the cached summary.
	// Returns domain.ErrNotFound when the document is unknown or has none.
	GetSummary(ctx context.Context, name string) (string, error)

	// DeleteDocument removes the document, its chunks and its cached
	// answers in one transaction. Unknown documents are ignored.
	DeleteDocument(ctx context.Context, name string) error
}
