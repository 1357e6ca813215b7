package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/postprocessors/tokenizer"
)

// Ensure Store implements both interfaces.
var (
	_ driven.DocumentStore = (*Store)(nil)
	_ driven.AnswerCache   = (*Store)(nil)
)

// Store is an in-memory implementation of driven.DocumentStore and
// driven.AnswerCache. One mutex guards both so deletes cascade atomically.
type Store struct {
	mu        sync.RWMutex
	seq       int // write order for documents and answers
	documents map[string]*documentEntry // keyed by name
	answers   map[string]map[string]answerEntry
}

type documentEntry struct {
	doc    domain.Document
	seq    int
	chunks []domain.Chunk
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		documents: make(map[string]*documentEntry),
		answers:   make(map[string]map[string]answerEntry),
	}
}

// Upsert creates the document if absent and returns its id.
func (s *Store) Upsert(_ context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.documents[name]; ok {
		return e.doc.ID, nil
	}

	s.seq++
	e := &documentEntry{
		doc: domain.Document{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedAt: time.Now().UTC(),
		},
		seq: s.seq,
	}
	s.documents[name] = e
	return e.doc.ID, nil
}

// ReplaceChunks replaces all chunks of the document with id documentID.
func (s *Store) ReplaceChunks(_ context.Context, documentID string, payloads []domain.ChunkPayload) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.byID(documentID)
	if e == nil {
		return 0, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}

	chunks := make([]domain.Chunk, 0, len(payloads))
	for _, payload := range payloads {
		if payload == nil {
			continue
		}
		content := payload.Text()
		if strings.TrimSpace(content) == "" {
			continue
		}
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: documentID,
			Index:      len(chunks),
			Content:    content,
			Tokens:     tokenizer.Tokenize(content),
		})
	}

	e.chunks = chunks
	return len(chunks), nil
}

// GetDocument retrieves a document by name.
func (s *Store) GetDocument(_ context.Context, name string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.documents[name]
	if !ok {
		return nil, fmt.Errorf("document %q: %w", name, domain.ErrNotFound)
	}
	doc := e.snapshot()
	return &doc, nil
}

// ListDocuments returns all documents, newest first.
func (s *Store) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*documentEntry, 0, len(s.documents))
	for _, e := range s.documents {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	docs := make([]domain.Document, len(entries))
	for i, e := range entries {
		docs[i] = e.snapshot()
	}
	return docs, nil
}

// GetFullText joins the document's chunks with blank lines.
func (s *Store) GetFullText(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.documents[name]
	if !ok {
		return "", fmt.Errorf("document %q: %w", name, domain.ErrNotFound)
	}

	parts := make([]string, len(e.chunks))
	for i, c := range e.chunks {
		parts[i] = c.Content
	}
	return strings.Join(parts, "\n\n"), nil
}

// GetChunks returns a copy of the document's chunks.
func (s *Store) GetChunks(_ context.Context, name string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.documents[name]
	if !ok {
		return []domain.Chunk{}, nil
	}
	return append([]domain.Chunk{}, e.chunks...), nil
}

// GetChunkByIndex returns one chunk's content.
func (s *Store) GetChunkByIndex(_ context.Context, name string, index int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.documents[name]
	if !ok || index < 0 || index >= len(e.chunks) {
		return "", fmt.Errorf("chunk %d of %q: %w", index, name, domain.ErrNotFound)
	}
	return e.chunks[index].Content, nil
}

// SetSummary stores or clears the summary. Unknown names are ignored.
func (s *Store) SetSummary(_ context.Context, name string, summary *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.documents[name]
	if !ok {
		return nil
	}
	if summary == nil {
		e.doc.Summary = nil
		return nil
	}
	v := *summary
	e.doc.Summary = &v
	return nil
}

// GetSummary returns the cached summary.
func (s *Store) GetSummary(_ context.Context, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.documents[name]
	if !ok || !e.doc.HasSummary() {
		return "", fmt.Errorf("summary of %q: %w", name, domain.ErrNotFound)
	}
	return *e.doc.Summary, nil
}

// DeleteDocument removes the document, its chunks and its cached answers.
func (s *Store) DeleteDocument(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, name)
	delete(s.answers, name)
	return nil
}

// byID finds a document by id. Callers must hold the lock.
func (s *Store) byID(id string) *documentEntry {
	for _, e := range s.documents {
		if e.doc.ID == id {
			return e
		}
	}
	return nil
}

func (e *documentEntry) snapshot() domain.Document {
	doc := e.doc
	doc.ChunkCount = len(e.chunks)
	if e.doc.Summary != nil {
		v := *e.doc.Summary
		doc.Summary = &v
	}
	return doc
}
