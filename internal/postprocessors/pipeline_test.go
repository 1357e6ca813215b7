package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// sentenceProcessor creates one chunk per sentence of the text.
type sentenceProcessor struct{}

func (sentenceProcessor) Name() string { return "sentences" }
func (sentenceProcessor) Process(_ context.Context, text string, _ []domain.Chunk) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for _, s := range strings.Split(text, ". ") {
		chunks = append(chunks, domain.Chunk{Index: len(chunks), Content: s})
	}
	return chunks, nil
}

// upperProcessor rewrites chunk content and records what it saw.
type upperProcessor struct {
	seen int
}

func (p *upperProcessor) Name() string { return "upper" }
func (p *upperProcessor) Process(_ context.Context, _ string, chunks []domain.Chunk) ([]domain.Chunk, error) {
	p.seen = len(chunks)
	for i := range chunks {
		chunks[i].Content = strings.ToUpper(chunks[i].Content)
	}
	return chunks, nil
}

type failingProcessor struct{}

func (failingProcessor) Name() string { return "broken" }
func (failingProcessor) Process(context.Context, string, []domain.Chunk) ([]domain.Chunk, error) {
	return nil, errors.New("boom")
}

func TestPipeline_Empty(t *testing.T) {
	p := NewPipeline()
	assert.Equal(t, 0, p.Len())

	chunks, err := p.Process(context.Background(), "Refunds are allowed.")
	require.NoError(t, err)
	assert.Nil(t, chunks)
}

func TestPipeline_ChainsInOrder(t *testing.T) {
	upper := &upperProcessor{}
	p := NewPipeline(sentenceProcessor{}, upper)

	chunks, err := p.Process(context.Background(), "Refunds are allowed. Shipping is free")
	require.NoError(t, err)

	assert.Equal(t, 2, upper.seen)
	require.Len(t, chunks, 2)
	assert.Equal(t, "REFUNDS ARE ALLOWED", chunks[0].Content)
	assert.Equal(t, "SHIPPING IS FREE", chunks[1].Content)
}

func TestPipeline_ProcessorError(t *testing.T) {
	p := NewPipeline(sentenceProcessor{}, failingProcessor{})

	_, err := p.Process(context.Background(), "text")

	require.Error(t, err)
	assert.Equal(t, "processor broken: boom", err.Error())
}

func TestPipeline_CancelledContext(t *testing.T) {
	upper := &upperProcessor{}
	p := NewPipeline(upper)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, "text")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, upper.seen)
}
