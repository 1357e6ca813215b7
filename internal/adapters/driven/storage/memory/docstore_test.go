package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

func TestStore_UpsertAndReplaceChunks(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id, err := store.Upsert(ctx, "policy")
	require.NoError(t, err)
	again, err := store.Upsert(ctx, "policy")
	require.NoError(t, err)
	assert.Equal(t, id, again)

	n, err := store.ReplaceChunks(ctx, id, []domain.ChunkPayload{
		domain.TextPayload("Refunds allowed."),
		domain.TextPayload(""),
		domain.RecordPayload{"text": "Shipping takes days."},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	chunks, err := store.GetChunks(ctx, "policy")
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[1].Index)
	assert.Equal(t, []string{"shipping", "takes", "days"}, chunks[1].Tokens)

	_, err = store.ReplaceChunks(ctx, "nope", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Reads(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id, _ := store.Upsert(ctx, "first")
	_, _ = store.ReplaceChunks(ctx, id, domain.TextPayloads([]string{"a", "b"}))
	_, _ = store.Upsert(ctx, "second")

	list, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)
	assert.Equal(t, 2, list[1].ChunkCount)

	text, err := store.GetFullText(ctx, "first")
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb", text)

	_, err = store.GetFullText(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	content, err := store.GetChunkByIndex(ctx, "first", 1)
	require.NoError(t, err)
	assert.Equal(t, "b", content)

	_, err = store.GetChunkByIndex(ctx, "first", -1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	chunks, err := store.GetChunks(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestStore_Summary(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	_, _ = store.Upsert(ctx, "policy")

	summary := "Short summary."
	require.NoError(t, store.SetSummary(ctx, "policy", &summary))
	summary = "mutated after save"

	got, err := store.GetSummary(ctx, "policy")
	require.NoError(t, err)
	assert.Equal(t, "Short summary.", got)

	require.NoError(t, store.SetSummary(ctx, "policy", nil))
	_, err = store.GetSummary(ctx, "policy")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, store.SetSummary(ctx, "missing", &summary))
}

func TestStore_AnswerCache(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.PutAnswer(ctx, "policy", "Refund window?", "14 days"))
	require.NoError(t, store.PutAnswer(ctx, "policy", " refund WINDOW? ", "two weeks"))

	answer, ok, err := store.GetAnswer(ctx, "policy", "refund window?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two weeks", answer)

	entries, err := store.ListAnswers(ctx, "policy")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, ok, err = store.GetAnswer(ctx, "other", "refund window?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_DeleteCascades(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id, _ := store.Upsert(ctx, "policy")
	_, _ = store.ReplaceChunks(ctx, id, domain.TextPayloads([]string{"text"}))
	summary := "Short."
	require.NoError(t, store.SetSummary(ctx, "policy", &summary))
	require.NoError(t, store.PutAnswer(ctx, "policy", "q", "a"))

	require.NoError(t, store.DeleteDocument(ctx, "policy"))

	_, err := store.GetDocument(ctx, "policy")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetFullText(ctx, "policy")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.GetSummary(ctx, "policy")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, ok, _ := store.GetAnswer(ctx, "policy", "q")
	assert.False(t, ok)

	// Re-creating the name yields a fresh document with no old answers.
	newID, _ := store.Upsert(ctx, "policy")
	assert.NotEqual(t, id, newID)
	_, ok, err = store.GetAnswer(ctx, "policy", "q")
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = store.GetSummary(ctx, "policy")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, store.DeleteDocument(ctx, "never-existed"))
}

func TestStore_Concurrency(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("doc-%d", i%4)
			id, err := store.Upsert(ctx, name)
			if err != nil {
				return
			}
			_, _ = store.ReplaceChunks(ctx, id, domain.TextPayloads([]string{"x"}))
			_ = store.PutAnswer(ctx, name, "q", "a")
			_, _ = store.ListDocuments(ctx)
		}(i)
	}
	wg.Wait()

	list, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}
