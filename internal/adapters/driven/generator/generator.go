// Package generator builds the configured answer generator.
package generator

import (
	"fmt"

	"github.com/custodia-labs/docqa/internal/adapters/driven/generator/command"
	"github.com/custodia-labs/docqa/internal/adapters/driven/generator/extractive"
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

// New creates the generator selected by settings, wrapped in a rate limiter
// when a rate is configured. GeneratorNone yields a nil generator, which the
// services treat as cache-only operation.
func New(
	settings domain.GeneratorSettings,
	tools extractive.ToolCaller,
	source extractive.ChunkSource,
) (driven.AnswerGenerator, error) {
	var gen driven.AnswerGenerator

	switch settings.Type {
	case domain.GeneratorNone:
		return nil, nil
	case domain.GeneratorExtractive, "":
		gen = extractive.New(tools, source)
	case domain.GeneratorCommand:
		cmd, err := command.New(settings.Command)
		if err != nil {
			return nil, err
		}
		gen = cmd
	default:
		return nil, fmt.Errorf("%w: unknown generator %q", domain.ErrInvalidInput, settings.Type)
	}

	if settings.RatePerMinute > 0 {
		gen = NewRateLimited(gen, settings.RatePerMinute)
	}
	return gen, nil
}
