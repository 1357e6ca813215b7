package driving

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// SearchService ranks a document's chunks against a query.
type SearchService interface {
	// Search returns the best matching chunks of one document.
	Search(ctx context.Context, name, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// SearchText renders search results as citation-tagged excerpts, or a
	// descriptive message for invalid input and empty documents.
	SearchText(ctx context.Context, name, query string) (string, error)
}
