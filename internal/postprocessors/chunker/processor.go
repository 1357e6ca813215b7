// Package chunker splits document text into overlapping fixed-size windows.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// ErrInvalidWindow is returned when the chunk size and overlap cannot make
// forward progress.
var ErrInvalidWindow = fmt.Errorf("%w: chunk overlap must be non-negative and smaller than chunk size",
	domain.ErrInvalidInput)

// Split trims text and cuts it into windows of at most maxChars characters,
// consecutive windows sharing overlap characters. Each window is trimmed and
// dropped when empty. Positions are counted in runes.
func Split(text string, maxChars, overlap int) ([]string, error) {
	if maxChars <= 0 || overlap < 0 || overlap >= maxChars {
		return nil, fmt.Errorf("%w (size=%d, overlap=%d)", ErrInvalidWindow, maxChars, overlap)
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil, nil
	}

	chunks := make([]string, 0, len(runes)/(maxChars-overlap)+1)
	cursor := 0

	for {
		end := min(cursor+maxChars, len(runes))

		if piece := strings.TrimSpace(string(runes[cursor:end])); piece != "" {
			chunks = append(chunks, piece)
		}
		if end == len(runes) {
			break
		}

		cursor = max(0, end-overlap)
	}

	return chunks, nil
}

// Processor splits document text into chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
// An overlap that is not smaller than the chunk size is reported by Process.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits text into chunks indexed 0..N-1.
// Input chunks are ignored; this processor creates new chunks from text.
func (p *Processor) Process(_ context.Context, text string, _ []domain.Chunk) ([]domain.Chunk, error) {
	pieces, err := Split(text, p.chunkSize, p.overlap)
	if err != nil {
		return nil, err
	}

	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, domain.Chunk{Index: i, Content: piece})
	}

	return chunks, nil
}
