package driven

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// PostProcessor processes extracted text to produce chunks.
// PostProcessors are chained in a pipeline.
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes the document text and the chunks produced so far.
	// A chunk-creating processor receives nil and returns new chunks.
	Process(ctx context.Context, text string, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the text through all processors in order.
	Process(ctx context.Context, text string) ([]domain.Chunk, error)
}
