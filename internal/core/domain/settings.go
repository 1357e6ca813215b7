package domain

import "fmt"

const unknownDescription = "Unknown"

// Built-in defaults.
const (
	DefaultChunkSize     = 2200
	DefaultChunkOverlap  = 250
	DefaultMinTextLength = 50
	DefaultTopK          = 5
	DefaultExcerptChars  = 700
)

// GeneratorType identifies how answers are generated.
type GeneratorType string

// Available generators.
const (
	// GeneratorExtractive composes answers from ranked excerpts without a model.
	GeneratorExtractive GeneratorType = "extractive"

	// GeneratorCommand pipes the prompt to an external command.
	GeneratorCommand GeneratorType = "command"

	// GeneratorNone disables generation; only cached answers are served.
	GeneratorNone GeneratorType = "none"
)

// IsValid returns true if the generator type is recognised.
func (g GeneratorType) IsValid() bool {
	switch g {
	case GeneratorExtractive, GeneratorCommand, GeneratorNone:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (g GeneratorType) String() string {
	return string(g)
}

// Description returns a human-readable description of the generator.
func (g GeneratorType) Description() string {
	switch g {
	case GeneratorExtractive:
		return "Extractive (ranked excerpts, no model)"
	case GeneratorCommand:
		return "External command"
	case GeneratorNone:
		return "Disabled (cache only)"
	default:
		return unknownDescription
	}
}

// ChunkingSettings controls how text is split into chunks.
type ChunkingSettings struct {
	// Size is the maximum characters per chunk.
	Size int

	// Overlap is the number of characters shared by adjacent chunks.
	Overlap int
}

// SearchSettings holds ranking output configuration.
type SearchSettings struct {
	// TopK is the number of results returned by a search.
	TopK int

	// ExcerptChars is the character budget of each rendered excerpt.
	ExcerptChars int
}

// GeneratorSettings configures the answer generator.
type GeneratorSettings struct {
	// Type selects the generator implementation.
	Type GeneratorType

	// Command is the shell command used by the command generator.
	Command string

	// RatePerMinute caps generation calls. Zero means unlimited.
	RatePerMinute int
}

// Settings is the complete application configuration.
type Settings struct {
	// DBPath is the SQLite database file. Empty uses the default location.
	DBPath string

	// MinTextLength is the shortest trimmed text accepted for storage.
	MinTextLength int

	Chunking  ChunkingSettings
	Search    SearchSettings
	Generator GeneratorSettings
}

// DefaultSettings returns settings populated with the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		MinTextLength: DefaultMinTextLength,
		Chunking: ChunkingSettings{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Search: SearchSettings{
			TopK:         DefaultTopK,
			ExcerptChars: DefaultExcerptChars,
		},
		Generator: GeneratorSettings{
			Type: GeneratorExtractive,
		},
	}
}

// Validate checks that the settings describe a usable configuration.
func (s Settings) Validate() error {
	if s.Chunking.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, s.Chunking.Size)
	}
	if s.Chunking.Overlap < 0 {
		return fmt.Errorf("%w: chunk overlap must not be negative, got %d", ErrInvalidInput, s.Chunking.Overlap)
	}
	if s.Chunking.Overlap >= s.Chunking.Size {
		return fmt.Errorf("%w: chunk overlap (%d) must be smaller than chunk size (%d)",
			ErrInvalidInput, s.Chunking.Overlap, s.Chunking.Size)
	}
	if s.MinTextLength < 0 {
		return fmt.Errorf("%w: minimum text length must not be negative", ErrInvalidInput)
	}
	if s.Search.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidInput, s.Search.TopK)
	}
	if s.Search.ExcerptChars <= 0 {
		return fmt.Errorf("%w: excerpt length must be positive, got %d", ErrInvalidInput, s.Search.ExcerptChars)
	}
	if !s.Generator.Type.IsValid() {
		return fmt.Errorf("%w: unknown generator %q", ErrInvalidInput, s.Generator.Type)
	}
	if s.Generator.Type == GeneratorCommand && s.Generator.Command == "" {
		return fmt.Errorf("%w: command generator requires generator.command", ErrInvalidInput)
	}
	if s.Generator.RatePerMinute < 0 {
		return fmt.Errorf("%w: generator rate must not be negative", ErrInvalidInput)
	}
	return nil
}
