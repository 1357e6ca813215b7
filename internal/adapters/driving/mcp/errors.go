// Package mcp provides an MCP (Model Context Protocol) server adapter for docqa.
// It lets an external reasoning agent call the document tools and read
// stored documents as resources.
package mcp

import "errors"

// ErrMissingToolService is returned when the tool registry is not provided.
var ErrMissingToolService = errors.New("mcp: tool service is required")
