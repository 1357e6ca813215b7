package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTextTooShort indicates extracted text is below the minimum length.
	// Scanned PDFs without OCR typically end up here.
	ErrTextTooShort = errors.New("could not extract meaningful text")

	// ErrUnknownTool indicates a tool name absent from the registry.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrGeneratorUnavailable indicates no answer generator is configured.
	ErrGeneratorUnavailable = errors.New("answer generator unavailable")
)
