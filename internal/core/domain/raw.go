package domain

import (
	"path/filepath"
	"strings"
)

// RawDocument represents uploaded bytes before text extraction.
type RawDocument struct {
	// Name is the document name the text will be stored under.
	Name string

	// URI is the original location (file path).
	URI string

	// MIMEType is the content type (e.g., "text/plain").
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// NameFromPath derives a document name from a file path: the base name
// without its last extension. Dotfiles keep their full name.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndex(base, "."); i > 0 {
		return base[:i]
	}
	return base
}

// ChangeType represents the type of file change seen by the watcher.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified file.
	ChangeUpdated

	// ChangeDeleted indicates a removed file.
	ChangeDeleted
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// RawDocumentChange is one observed change to a watched file.
type RawDocumentChange struct {
	Type     ChangeType
	Document RawDocument
}
