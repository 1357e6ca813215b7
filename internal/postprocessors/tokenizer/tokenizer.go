// Package tokenizer turns text into the lower-cased word tokens used for
// BM25 ranking.
package tokenizer

import (
	"context"
	"strings"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// Tokenize extracts maximal runs of ASCII letters, digits and underscore,
// lower-cased. Any other rune, including non-ASCII letters, separates tokens.
func Tokenize(text string) []string {
	tokens := make([]string, 0, len(text)/6)
	start := -1

	for i := 0; i < len(text); i++ {
		if isWordByte(text[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, strings.ToLower(text[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, strings.ToLower(text[start:]))
	}

	return tokens
}

// isWordByte reports whether b is in [A-Za-z0-9_].
// Bytes of multi-byte UTF-8 sequences are always >= 0x80 and never match.
func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '_':
		return true
	default:
		return false
	}
}

// Join serialises tokens into their whitespace-joined storage form.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

// Split parses the storage form produced by Join.
func Split(stored string) []string {
	return strings.Fields(stored)
}

// Processor attaches tokens to chunks produced earlier in the pipeline.
// It implements the PostProcessor interface.
type Processor struct{}

// New creates a tokenizer processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "tokenizer"
}

// Process sets Tokens on every chunk from its Content.
func (p *Processor) Process(_ context.Context, _ string, chunks []domain.Chunk) ([]domain.Chunk, error) {
	for i := range chunks {
		chunks[i].Tokens = Tokenize(chunks[i].Content)
	}
	return chunks, nil
}
