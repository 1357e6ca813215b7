package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/logger"
)

var smallChunks = domain.ChunkingSettings{Size: 200, Overlap: 20}

func TestDocumentService_Ingest(t *testing.T) {
	ts := setupTestServices(t, smallChunks)
	ctx := context.Background()

	result, err := ts.documents.Ingest(ctx, "  policy  ", strings.Repeat("a", 500))
	require.NoError(t, err)

	assert.Equal(t, "policy", result.Name)
	assert.Equal(t, 3, result.ChunkCount)
	assert.NotEmpty(t, result.DocumentID)

	chunks, err := ts.documents.Chunks(ctx, "policy")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
	}
}

func TestDocumentService_Ingest_Validation(t *testing.T) {
	ts := setupTestServices(t, smallChunks)
	ctx := context.Background()

	tests := []struct {
		name    string
		docName string
		text    string
		wantErr error
	}{
		{"empty name", "  ", strings.Repeat("a", 100), domain.ErrInvalidInput},
		{"empty text", "doc", "", domain.ErrTextTooShort},
		{"short text", "doc", "too short", domain.ErrTextTooShort},
		{"padding does not count", "doc", "   " + strings.Repeat("b", 49) + "   ", domain.ErrTextTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.documents.Ingest(ctx, tt.docName, tt.text)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	docs, err := ts.documents.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs, "rejected text must not create documents")
}

func TestDocumentService_Ingest_ExactMinimum(t *testing.T) {
	ts := setupTestServices(t, smallChunks)

	_, err := ts.documents.Ingest(context.Background(), "doc", strings.Repeat("c", domain.DefaultMinTextLength))
	assert.NoError(t, err)
}

func TestDocumentService_Ingest_ReplacesChunksKeepsCaches(t *testing.T) {
	ts := setupTestServices(t, smallChunks)
	ctx := context.Background()

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()

	first, err := ts.documents.Ingest(ctx, "policy", strings.Repeat("first version ", 40))
	require.NoError(t, err)
	require.NoError(t, ts.summaries.Save(ctx, "policy", "Old summary"))
	require.NoError(t, ts.store.PutAnswer(ctx, "policy", "q", "old answer"))

	second, err := ts.documents.Ingest(ctx, "policy", strings.Repeat("second version ", 10))
	require.NoError(t, err)
	assert.Equal(t, first.DocumentID, second.DocumentID)

	text, err := ts.documents.FullText(ctx, "policy")
	require.NoError(t, err)
	assert.NotContains(t, text, "first")

	summary, err := ts.summaries.Get(ctx, "policy")
	require.NoError(t, err)
	assert.Equal(t, "Old summary", summary)

	cached, ok, err := ts.store.GetAnswer(ctx, "policy", "q")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "old answer", cached)

	assert.Contains(t, buf.String(), "Re-chunking")
}

func TestDocumentService_Ingest_InvalidWindow(t *testing.T) {
	ts := setupTestServices(t, domain.ChunkingSettings{Size: 10, Overlap: 10})

	_, err := ts.documents.Ingest(context.Background(), "doc", strings.Repeat("x", 60))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentService_Reads(t *testing.T) {
	ts := setupTestServices(t, smallChunks)
	ctx := context.Background()
	storeChunks(t, ts, "policy", "zero", "one")

	doc, err := ts.documents.Get(ctx, "policy")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.ChunkCount)

	content, err := ts.documents.ChunkByIndex(ctx, "policy", 1)
	require.NoError(t, err)
	assert.Equal(t, "one", content)

	_, err = ts.documents.ChunkByIndex(ctx, "policy", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ts.documents.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Delete(t *testing.T) {
	ts := setupTestServices(t, smallChunks)
	ctx := context.Background()

	storeChunks(t, ts, "policy", "Refunds allowed.")
	require.NoError(t, ts.summaries.Save(ctx, "policy", "summary"))
	require.NoError(t, ts.store.PutAnswer(ctx, "policy", "q", "a"))

	require.NoError(t, ts.documents.Delete(ctx, "policy"))

	_, err := ts.documents.Get(ctx, "policy")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chunks, err := ts.documents.Chunks(ctx, "policy")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, err = ts.documents.FullText(ctx, "policy")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = ts.summaries.Get(ctx, "policy")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, ok, err := ts.store.GetAnswer(ctx, "policy", "q")
	require.NoError(t, err)
	assert.False(t, ok)

	text, err := ts.search.SearchText(ctx, "policy", "refunds")
	require.NoError(t, err)
	assert.Equal(t, "No chunks found for 'policy'.", text)
}

func TestDocumentService_ReingestAfterDeleteDropsOldAnswers(t *testing.T) {
	ts := setupTestServices(t, smallChunks)
	ctx := context.Background()

	storeChunks(t, ts, "policy", "Refunds are allowed within 14 days.")
	ts.generator.answer = "Within 14 days [chunk 0]."
	first, err := ts.answers.Ask(ctx, "policy", "What is the refund window?")
	require.NoError(t, err)
	require.False(t, first.Cached)

	require.NoError(t, ts.documents.Delete(ctx, "policy"))
	storeChunks(t, ts, "policy", "Refunds are allowed within 30 days.")
	ts.generator.answer = "Within 30 days [chunk 0]."

	second, err := ts.answers.Ask(ctx, "policy", "What is the refund window?")
	require.NoError(t, err)
	assert.False(t, second.Cached)
	assert.Equal(t, "Within 30 days [chunk 0].", second.Text)
	assert.Equal(t, 2, ts.generator.callCount())
}

func TestDocumentService_ConcurrentIngestSameName(t *testing.T) {
	ts := setupTestServices(t, smallChunks)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := strings.Repeat(fmt.Sprintf("version%d ", i), 30)
			_, err := ts.documents.Ingest(ctx, "shared", text)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	docs, err := ts.documents.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	// The surviving chunk set comes from a single ingestion.
	text, err := ts.documents.FullText(ctx, "shared")
	require.NoError(t, err)
	digits := make(map[rune]bool)
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits[r] = true
		}
	}
	assert.Len(t, digits, 1, "chunks from different ingestions were mixed")
}
