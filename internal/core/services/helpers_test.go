package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/postprocessors"
)

// mockGenerator implements driven.AnswerGenerator for testing.
type mockGenerator struct {
	mu       sync.Mutex
	answer   string
	err      error
	calls    int
	requests []driven.GenerateRequest
}

func (m *mockGenerator) Generate(_ context.Context, req driven.GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// failingStore wraps the memory store and fails selected calls.
type failingStore struct {
	*memory.Store
	err error
}

var errStoreDown = errors.New("database is locked")

func (f *failingStore) GetChunks(context.Context, string) ([]domain.Chunk, error) {
	return nil, f.err
}

func (f *failingStore) GetAnswer(context.Context, string, string) (string, bool, error) {
	return "", false, f.err
}

func (f *failingStore) GetSummary(context.Context, string) (string, error) {
	return "", f.err
}

func (f *failingStore) ListDocuments(context.Context) ([]domain.Document, error) {
	return nil, f.err
}

// testServices bundles services wired to one in-memory store.
type testServices struct {
	store     *memory.Store
	generator *mockGenerator
	documents *DocumentService
	search    *SearchService
	answers   *AnswerService
	summaries *SummaryService
	toolbox   *Toolbox
}

func setupTestServices(t *testing.T, chunking domain.ChunkingSettings) *testServices {
	t.Helper()

	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := postprocessors.NewDefaultPipeline(registry, chunking)
	require.NoError(t, err)

	store := memory.NewStore()
	gen := &mockGenerator{answer: "generated"}

	ts := &testServices{
		store:     store,
		generator: gen,
		documents: NewDocumentService(store, pipeline, domain.DefaultMinTextLength),
		search:    NewSearchService(store, domain.SearchSettings{}),
		answers:   NewAnswerService(store, store, gen),
		summaries: NewSummaryService(store, gen),
	}
	ts.toolbox = NewToolbox(ts.search, ts.summaries, ts.documents)
	return ts
}

// storeChunks creates a document holding exactly the given chunk texts.
func storeChunks(t *testing.T, ts *testServices, name string, chunks ...string) {
	t.Helper()
	ctx := context.Background()

	id, err := ts.documents.Upsert(ctx, name)
	require.NoError(t, err)
	_, err = ts.documents.ReplaceChunks(ctx, id, domain.TextPayloads(chunks))
	require.NoError(t, err)
}
