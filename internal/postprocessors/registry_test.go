package postprocessors

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// namedProcessor passes chunks through unchanged.
type namedProcessor struct {
	name string
}

func (p *namedProcessor) Name() string { return p.name }
func (p *namedProcessor) Process(_ context.Context, _ string, chunks []domain.Chunk) ([]domain.Chunk, error) {
	return chunks, nil
}

func namedBuilder(name string) BuilderFunc {
	return func(cfg map[string]any) (driven.PostProcessor, error) {
		if n, ok := cfg["name"].(string); ok {
			return &namedProcessor{name: n}, nil
		}
		return &namedProcessor{name: name}, nil
	}
}

func TestRegistry_RegisterAndBuild(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Has("stage"))

	r.Register("stage", namedBuilder("stage"))
	require.True(t, r.Has("stage"))

	proc, err := r.Build("stage", map[string]any{"name": "custom"})
	require.NoError(t, err)
	assert.Equal(t, "custom", proc.Name())
}

func TestRegistry_BuildUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Build("unknown", nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), `"unknown"`)
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Names())

	r.Register("tokenizer", namedBuilder("tokenizer"))
	r.Register("chunker", namedBuilder("chunker"))

	assert.Equal(t, []string{"chunker", "tokenizer"}, r.Names())
}

func TestRegistry_BuildPipeline(t *testing.T) {
	r := NewRegistry()
	r.Register("a", namedBuilder("a"))
	r.Register("b", namedBuilder("b"))

	p, err := r.BuildPipeline(Stage{Name: "a"}, Stage{Name: "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Len())

	_, err = r.BuildPipeline(Stage{Name: "a"}, Stage{Name: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "building missing")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterDefaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	assert.Equal(t, []string{ChunkerName, TokenizerName}, r.Names())

	for _, cfg := range []map[string]any{nil, {"chunk_size": 500, "overlap": 100}} {
		proc, err := r.Build(ChunkerName, cfg)
		require.NoError(t, err)
		assert.Equal(t, ChunkerName, proc.Name())
	}
}

func TestGetIntFromConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  map[string]any
		want int
	}{
		{"int", map[string]any{"size": 100}, 100},
		{"int64", map[string]any{"size": int64(200)}, 200},
		{"float64 from toml", map[string]any{"size": float64(300)}, 300},
		{"string", map[string]any{"size": "400"}, 0},
		{"missing", map[string]any{"other": 100}, 0},
		{"nil config", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getIntFromConfig(tt.cfg, "size"))
		})
	}
}

func TestNewDefaultPipeline(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	p, err := NewDefaultPipeline(r, domain.ChunkingSettings{Size: 200, Overlap: 20})
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())

	chunks, err := p.Process(context.Background(), strings.Repeat("Refunds are allowed. ", 25))
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		assert.NotEmpty(t, c.Tokens)
	}
}

func TestNewDefaultPipeline_InvalidWindow(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	p, err := NewDefaultPipeline(r, domain.ChunkingSettings{Size: 100, Overlap: 100})
	require.NoError(t, err)

	_, err = p.Process(context.Background(), "some text long enough")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewDefaultPipeline_Unregistered(t *testing.T) {
	_, err := NewDefaultPipeline(NewRegistry(), domain.ChunkingSettings{Size: 100, Overlap: 10})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildChunker_ZeroOverlap(t *testing.T) {
	proc, err := buildChunker(map[string]any{"chunk_size": 10, "overlap": 0})
	require.NoError(t, err)

	chunks, err := proc.Process(context.Background(), strings.Repeat("a", 30), nil)
	require.NoError(t, err)
	assert.Len(t, chunks, 3)
}
