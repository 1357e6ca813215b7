package driven

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// AnswerCache stores answers keyed by document name and normalised question.
// Entries are removed together with their document and never expire.
type AnswerCache interface {
	// GetAnswer returns the cached answer and true on a hit.
	GetAnswer(ctx context.Context, documentName, question string) (string, bool, error)

	// PutAnswer stores the answer, replacing any entry for the same key.
	PutAnswer(ctx context.Context, documentName, question, answer string) error

	// ListAnswers returns the document's entries, newest first.
	ListAnswers(ctx context.Context, documentName string) ([]domain.AnswerEntry, error)
}
