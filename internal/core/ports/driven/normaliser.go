package driven

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// Normaliser extracts plain text from uploaded bytes.
// Each normaliser handles specific MIME types.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Normalise returns the extracted, trimmed text.
	Normalise(ctx context.Context, raw *domain.RawDocument) (string, error)
}

// NormaliserRegistry selects the normaliser for a document by MIME type.
type NormaliserRegistry interface {
	// Normalise extracts text using the normaliser registered for
	// raw.MIMEType.
	Normalise(ctx context.Context, raw *domain.RawDocument) (string, error)

	// Register adds a normaliser. Later registrations win for shared types.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
