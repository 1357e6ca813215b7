package driving

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// AnswerService answers questions about documents through the answer cache.
type AnswerService interface {
	// Ask returns a cached answer or generates, caches and returns a new one.
	Ask(ctx context.Context, name, question string) (*domain.Answer, error)

	// Cached lists the cached answers of a document, newest first.
	Cached(ctx context.Context, name string) ([]domain.AnswerEntry, error)
}

// SummaryService manages the cached per-document summary.
type SummaryService interface {
	// Get returns the cached summary or domain.ErrNotFound.
	Get(ctx context.Context, name string) (string, error)

	// Save stores the summary.
	Save(ctx context.Context, name, summary string) error

	// Clear removes the cached summary.
	Clear(ctx context.Context, name string) error

	// Summarize returns the cached summary, or generates and caches one.
	// The boolean reports whether the summary came from the cache.
	Summarize(ctx context.Context, name string) (string, bool, error)
}
