// Package sqlite provides the SQLite implementation of the document store
// and the answer cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Both interfaces share one database
// so that deleting a document removes its chunks and cached answers in a
// single transaction:
//
//   - DocumentStore: documents, chunks and cached summaries
//   - AnswerCache: question/answer pairs keyed by document name
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.docqa/data/docqa.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. The database runs in WAL mode so
// readers never observe a partially replaced chunk set, and write
// transactions begin IMMEDIATE so concurrent writers queue on busy_timeout
// instead of failing on lock upgrade.
package sqlite
