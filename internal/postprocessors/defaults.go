package postprocessors

import (
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/postprocessors/chunker"
	"github.com/custodia-labs/docqa/internal/postprocessors/tokenizer"
)

// Built-in processor names.
const (
	ChunkerName   = "chunker"
	TokenizerName = "tokenizer"
)

// RegisterDefaults registers the built-in processors.
func RegisterDefaults(r *Registry) {
	r.Register(ChunkerName, buildChunker)
	r.Register(TokenizerName, buildTokenizer)
}

// NewDefaultPipeline builds the chunker followed by the tokenizer, using the
// given chunking settings.
func NewDefaultPipeline(r *Registry, chunking domain.ChunkingSettings) (*Pipeline, error) {
	return r.BuildPipeline(
		Stage{Name: ChunkerName, Config: map[string]any{
			"chunk_size": chunking.Size,
			"overlap":    chunking.Overlap,
		}},
		Stage{Name: TokenizerName},
	)
}

// buildChunker creates a chunker processor from generic config.
// Supported config keys:
//   - chunk_size (int): Characters per chunk (default: 2200)
//   - overlap (int): Overlapping characters between chunks (default: 250)
func buildChunker(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option

	if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if _, ok := cfg["overlap"]; ok {
		opts = append(opts, chunker.WithOverlap(getIntFromConfig(cfg, "overlap")))
	}

	return chunker.New(opts...), nil
}

func buildTokenizer(_ map[string]any) (driven.PostProcessor, error) {
	return tokenizer.New(), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
