package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/docqa/internal/citation"
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/logger"
	"github.com/custodia-labs/docqa/internal/ranking/bm25"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Messages returned by SearchText in place of results.
const (
	msgNameRequired = "Document name is required."
	msgQueryEmpty   = "Query is empty."
	msgNoChunks     = "No chunks found for '%s'."
)

// SearchService ranks one document's chunks with BM25.
// The index is rebuilt from storage on every query, so results always
// reflect the latest chunk replacement.
type SearchService struct {
	store        driven.DocumentStore
	topK         int
	excerptChars int
}

// NewSearchService creates a new search service.
// Non-positive settings fall back to the built-in defaults.
func NewSearchService(store driven.DocumentStore, settings domain.SearchSettings) *SearchService {
	s := &SearchService{
		store:        store,
		topK:         settings.TopK,
		excerptChars: settings.ExcerptChars,
	}
	if s.topK <= 0 {
		s.topK = domain.DefaultTopK
	}
	if s.excerptChars <= 0 {
		s.excerptChars = domain.DefaultExcerptChars
	}
	return s
}

// Search scores every chunk of the named document against query and
// returns the best opts.TopK, highest score first. Ties keep reading order.
func (s *SearchService) Search(
	ctx context.Context, name, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	defer logger.Timed("BM25 ranking")()
	logger.Debug("Document: %q, query: %q", name, query)

	terms := queryTerms(query)
	if len(terms) == 0 {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	chunks, err := s.store.GetChunks(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading chunks: %w", err)
	}
	if len(chunks) == 0 {
		return []domain.SearchResult{}, nil
	}

	corpus := make([][]string, len(chunks))
	for i, c := range chunks {
		corpus[i] = c.Tokens
	}
	index := bm25.New(corpus)
	scores := index.Scores(terms)
	logger.Debug("Scored %d chunks (avg length %.1f tokens)", index.Len(), index.AvgDocLen())

	results := make([]domain.SearchResult, len(chunks))
	for i, c := range chunks {
		results[i] = domain.SearchResult{
			Index:   c.Index,
			Score:   scores[i],
			Excerpt: excerpt(c.Content, s.excerptChars),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Index < results[j].Index
	})

	limit := opts.TopK
	if limit <= 0 {
		limit = s.topK
	}
	if len(results) > limit {
		results = results[:limit]
	}

	for _, r := range results {
		logger.Debug("  chunk %d: %.4f", r.Index, r.Score)
	}

	return results, nil
}

// SearchText renders the top results as "[chunk N] excerpt" lines.
func (s *SearchService) SearchText(ctx context.Context, name, query string) (string, error) {
	name = strings.TrimSpace(name)
	query = strings.TrimSpace(query)

	if name == "" {
		return msgNameRequired, nil
	}
	if query == "" {
		return msgQueryEmpty, nil
	}

	results, err := s.Search(ctx, name, query, domain.SearchOptions{})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return fmt.Sprintf(msgNoChunks, name), nil
	}

	lines := make([]string, len(results))
	for i, r := range results {
		lines[i] = citation.Format(r.Index) + " " + r.Excerpt
	}
	return strings.Join(lines, "\n"), nil
}

// queryTerms lower-cases the query and splits it on whitespace. Query terms
// keep their punctuation, so "refunds?" does not match the token "refunds".
func queryTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// excerpt keeps the first limit characters of content on a single line.
func excerpt(content string, limit int) string {
	runes := []rune(content)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return strings.TrimSpace(strings.ReplaceAll(string(runes), "\n", " "))
}
