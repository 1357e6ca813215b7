package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// TopK is the maximum number of results. Zero uses the configured default.
	TopK int
}

// SearchResult represents a single ranked chunk.
type SearchResult struct {
	// Index is the chunk's position within the document.
	Index int

	// Score is the BM25 relevance score.
	Score float64

	// Excerpt is the truncated, single-line chunk content.
	Excerpt string
}

// Answer is the outcome of asking a question about a document.
type Answer struct {
	// Text is the answer shown to the user.
	Text string

	// Cached is true when the answer came from the answer cache.
	Cached bool

	// Failed is true when generation failed and Text carries the error.
	Failed bool

	// Citations are the sources referenced by [chunk N] markers in Text.
	Citations []Citation
}

// Citation is a chunk referenced from an answer.
type Citation struct {
	// Index is the cited chunk index.
	Index int

	// Content is the chunk text, empty when not found.
	Content string

	// Found is false when the index no longer exists in the document.
	Found bool
}
