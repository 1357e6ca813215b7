// Package domain defines the core business entities for docqa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A named, stored text with an optional cached summary
//   - Chunk: A bounded slice of a document, the atomic unit of retrieval
//   - ChunkPayload: The closed set of chunk inputs accepted at ingestion
//   - AnswerEntry: A cached answer keyed by document and normalised question
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
