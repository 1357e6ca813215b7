package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService coordinates the document lifecycle.
// Mutations on one document name never interleave; different names proceed
// in parallel.
type DocumentService struct {
	store         driven.DocumentStore
	pipeline      driven.PostProcessorPipeline
	minTextLength int
	locks         *namedLocks
}

// NewDocumentService creates a new document service.
// The pipeline turns ingested text into chunks; minTextLength is the shortest
// trimmed text Ingest accepts.
func NewDocumentService(
	store driven.DocumentStore,
	pipeline driven.PostProcessorPipeline,
	minTextLength int,
) *DocumentService {
	return &DocumentService{
		store:         store,
		pipeline:      pipeline,
		minTextLength: minTextLength,
		locks:         newNamedLocks(),
	}
}

// Ingest validates text and stores it chunked under name.
func (s *DocumentService) Ingest(ctx context.Context, name, text string) (*domain.IngestResult, error) {
	logger.Section("Ingest")
	defer logger.Timed("Ingest")()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: document name is required", domain.ErrInvalidInput)
	}

	text = strings.TrimSpace(text)
	if n := utf8.RuneCountInString(text); n == 0 || n < s.minTextLength {
		logger.Debug("Rejected %q: %d characters, minimum %d", name, n, s.minTextLength)
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrTextTooShort)
	}

	chunks, err := s.pipeline.Process(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("chunking %q: %w", name, err)
	}
	logger.Debug("Split %q into %d chunks", name, len(chunks))

	unlock := s.locks.lock(name)
	defer unlock()

	if existing, err := s.store.GetDocument(ctx, name); err == nil && existing.ChunkCount > 0 {
		logger.Warn("Re-chunking %q: cached summary and answers are kept and may be stale", name)
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("loading document: %w", err)
	}

	id, err := s.store.Upsert(ctx, name)
	if err != nil {
		return nil, err
	}

	contents := make([]string, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
	}

	count, err := s.replaceChunksLocked(ctx, id, domain.TextPayloads(contents))
	if err != nil {
		return nil, err
	}

	logger.Info("Stored %q with %d chunks", name, count)
	return &domain.IngestResult{DocumentID: id, Name: name, ChunkCount: count}, nil
}

// Upsert creates the named document if absent and returns its id.
func (s *DocumentService) Upsert(ctx context.Context, name string) (string, error) {
	unlock := s.locks.lock(name)
	defer unlock()
	return s.store.Upsert(ctx, name)
}

// ReplaceChunks atomically replaces all chunks of a document.
func (s *DocumentService) ReplaceChunks(
	ctx context.Context, documentID string, payloads []domain.ChunkPayload,
) (int, error) {
	return s.replaceChunksLocked(ctx, documentID, payloads)
}

// replaceChunksLocked holds the id lock for the replacement. Ingest calls
// it while holding the name lock, so the lock order is always name then id.
func (s *DocumentService) replaceChunksLocked(
	ctx context.Context, documentID string, payloads []domain.ChunkPayload,
) (int, error) {
	unlock := s.locks.lock("id:" + documentID)
	defer unlock()
	return s.store.ReplaceChunks(ctx, documentID, payloads)
}

// List returns all documents, most recently created first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// Get retrieves a document by name.
func (s *DocumentService) Get(ctx context.Context, name string) (*domain.Document, error) {
	return s.store.GetDocument(ctx, name)
}

// FullText returns the document text reassembled from its chunks.
func (s *DocumentService) FullText(ctx context.Context, name string) (string, error) {
	return s.store.GetFullText(ctx, name)
}

// Chunks returns the document's chunks in reading order.
func (s *DocumentService) Chunks(ctx context.Context, name string) ([]domain.Chunk, error) {
	return s.store.GetChunks(ctx, name)
}

// ChunkByIndex returns one chunk's content.
func (s *DocumentService) ChunkByIndex(ctx context.Context, name string, index int) (string, error) {
	return s.store.GetChunkByIndex(ctx, name, index)
}

// Delete removes the document with its chunks, summary and cached answers.
func (s *DocumentService) Delete(ctx context.Context, name string) error {
	unlock := s.locks.lock(name)
	defer unlock()

	if err := s.store.DeleteDocument(ctx, name); err != nil {
		return err
	}
	logger.Info("Deleted %q", name)
	return nil
}
