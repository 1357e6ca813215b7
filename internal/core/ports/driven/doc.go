// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Document, chunk and summary persistence
//   - AnswerCache: Question-answer cache persistence
//   - ConfigStore: Application configuration
//   - PostProcessor: Turns extracted text into chunks
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AnswerGenerator: Produces answers for cache misses. Without it, only
//     cached answers are served.
//   - Normaliser, NormaliserRegistry: Extract text from uploaded bytes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
