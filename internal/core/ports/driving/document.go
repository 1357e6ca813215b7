package driving

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// DocumentService manages stored documents and keeps dependent state
// (chunks, summary, cached answers) consistent with their lifecycle.
type DocumentService interface {
	// Ingest validates extracted text, then stores it chunked under name.
	Ingest(ctx context.Context, name, text string) (*domain.IngestResult, error)

	// Upsert creates the named document if absent and returns its id.
	Upsert(ctx context.Context, name string) (string, error)

	// ReplaceChunks atomically replaces all chunks of a document.
	ReplaceChunks(ctx context.Context, documentID string, payloads []domain.ChunkPayload) (int, error)

	// List returns all documents, most recently created first.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by name.
	Get(ctx context.Context, name string) (*domain.Document, error)

	// FullText returns the document text reassembled from its chunks.
	FullText(ctx context.Context, name string) (string, error)

	// Chunks returns the document's chunks in reading order.
	Chunks(ctx context.Context, name string) ([]domain.Chunk, error)

	// ChunkByIndex returns one chunk's content.
	ChunkByIndex(ctx context.Context, name string, index int) (string, error)

	// Delete removes the document with its chunks, summary and cached answers.
	Delete(ctx context.Context, name string) error
}
