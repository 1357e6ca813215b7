package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docqa/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/postprocessors/tokenizer"
)

// dsnOptions configures every pooled connection. Foreign keys are a
// per-connection pragma, so they must be set here rather than with Exec.
const dsnOptions = "?_pragma=journal_mode(WAL)" +
	"&_pragma=busy_timeout(5000)" +
	"&_pragma=foreign_keys(1)" +
	"&_txlock=immediate"

// Store is a SQLite-based storage that provides access to the document
// store and answer cache through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns ~/.docqa/data/docqa.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".docqa", "data", "docqa.db"), nil
}

// NewStore opens (creating if needed) the database file at dbPath and
// applies pending migrations. If dbPath is empty, DefaultPath is used.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// AnswerCache returns an AnswerCache interface backed by this store.
func (s *Store) AnswerCache() driven.AnswerCache {
	return &answerCache{store: s}
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("recording version: %w", err)
	}

	return tx.Commit()
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Upsert creates the document if absent and returns its id.
func (s *documentStore) Upsert(ctx context.Context, name string) (string, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, name, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`, uuid.New().String(), name, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("saving document: %w", err)
	}

	var id string
	if err := tx.QueryRowContext(ctx, "SELECT id FROM documents WHERE name = ?", name).Scan(&id); err != nil {
		return "", fmt.Errorf("reading document id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing transaction: %w", err)
	}
	return id, nil
}

// ReplaceChunks deletes the document's chunks and stores payloads in order.
func (s *documentStore) ReplaceChunks(ctx context.Context, documentID string, payloads []domain.ChunkPayload) (int, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM documents WHERE id = ?", documentID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("checking document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE doc_id = ?", documentID); err != nil {
		return 0, fmt.Errorf("deleting chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, doc_id, chunk_index, content, tokens)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	index := 0
	for _, payload := range payloads {
		if payload == nil {
			continue
		}
		content := payload.Text()
		if strings.TrimSpace(content) == "" {
			continue
		}

		tokens := tokenizer.Join(tokenizer.Tokenize(content))
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), documentID, index, content, tokens); err != nil {
			return 0, fmt.Errorf("saving chunk: %w", err)
		}
		index++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return index, nil
}

// GetDocument retrieves a document by name.
func (s *documentStore) GetDocument(ctx context.Context, name string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT d.id, d.name, d.created_at, d.summary,
		       (SELECT COUNT(*) FROM chunks c WHERE c.doc_id = d.id)
		FROM documents d WHERE d.name = ?
	`, name)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns all documents, newest first.
func (s *documentStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT d.id, d.name, d.created_at, d.summary,
		       (SELECT COUNT(*) FROM chunks c WHERE c.doc_id = d.id)
		FROM documents d
		ORDER BY d.rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// GetFullText joins the document's chunks with blank lines. The document
// row and its chunks are read in one statement so a concurrent delete
// yields ErrNotFound rather than an empty text.
func (s *documentStore) GetFullText(ctx context.Context, name string) (string, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.content
		FROM documents d
		LEFT JOIN chunks c ON c.doc_id = d.id
		WHERE d.name = ?
		ORDER BY c.chunk_index
	`, name)
	if err != nil {
		return "", fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	found := false
	var parts []string
	for rows.Next() {
		found = true
		var content sql.NullString
		if err := rows.Scan(&content); err != nil {
			return "", fmt.Errorf("scanning chunk: %w", err)
		}
		if content.Valid {
			parts = append(parts, content.String)
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating chunks: %w", err)
	}

	if !found {
		return "", fmt.Errorf("document %q: %w", name, domain.ErrNotFound)
	}
	return strings.Join(parts, "\n\n"), nil
}

// GetChunks retrieves all chunks of a document ordered by index.
func (s *documentStore) GetChunks(ctx context.Context, name string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT c.id, c.doc_id, c.chunk_index, c.content, c.tokens
		FROM chunks c
		JOIN documents d ON d.id = c.doc_id
		WHERE d.name = ?
		ORDER BY c.chunk_index
	`, name)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	chunks := []domain.Chunk{}
	for rows.Next() {
		var chunk domain.Chunk
		var tokens string
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Index, &chunk.Content, &tokens); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.Tokens = tokenizer.Split(tokens)
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// GetChunkByIndex retrieves one chunk's content.
func (s *documentStore) GetChunkByIndex(ctx context.Context, name string, index int) (string, error) {
	var content string
	err := s.store.db.QueryRowContext(ctx, `
		SELECT c.content
		FROM chunks c
		JOIN documents d ON d.id = c.doc_id
		WHERE d.name = ? AND c.chunk_index = ?
	`, name, index).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("chunk %d of %q: %w", index, name, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("querying chunk: %w", err)
	}
	return content, nil
}

// SetSummary stores or clears the cached summary.
func (s *documentStore) SetSummary(ctx context.Context, name string, summary *string) error {
	_, err := s.store.db.ExecContext(ctx,
		"UPDATE documents SET summary = ? WHERE name = ?", nullString(summary), name)
	if err != nil {
		return fmt.Errorf("saving summary: %w", err)
	}
	return nil
}

// GetSummary returns the cached summary.
func (s *documentStore) GetSummary(ctx context.Context, name string) (string, error) {
	var summary sql.NullString
	err := s.store.db.QueryRowContext(ctx,
		"SELECT summary FROM documents WHERE name = ?", name).Scan(&summary)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("document %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("querying summary: %w", err)
	}
	if !summary.Valid || summary.String == "" {
		return "", fmt.Errorf("summary of %q: %w", name, domain.ErrNotFound)
	}
	return summary.String, nil
}

// DeleteDocument removes the document, its chunks and its cached answers.
func (s *documentStore) DeleteDocument(ctx context.Context, name string) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM chunks WHERE doc_id IN (SELECT id FROM documents WHERE name = ?)", name); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE name = ?", name); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM qa_cache WHERE doc_name = ?", name); err != nil {
		return fmt.Errorf("deleting cached answers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ==================== Answer Cache ====================

// answerCache implements driven.AnswerCache.
type answerCache struct {
	store *Store
}

var _ driven.AnswerCache = (*answerCache)(nil)

// GetAnswer returns the cached answer for the normalised question.
func (c *answerCache) GetAnswer(ctx context.Context, documentName, question string) (string, bool, error) {
	var answer string
	err := c.store.db.QueryRowContext(ctx, `
		SELECT answer FROM qa_cache
		WHERE doc_name = ? AND question_hash = ?
	`, documentName, domain.HashQuestion(question)).Scan(&answer)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying cached answer: %w", err)
	}
	return answer, true, nil
}

// PutAnswer stores the answer, overwriting any entry for the same key.
func (c *answerCache) PutAnswer(ctx context.Context, documentName, question, answer string) error {
	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO qa_cache (doc_name, question_hash, question, answer, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(doc_name, question_hash) DO UPDATE SET
			question = excluded.question,
			answer = excluded.answer,
			created_at = excluded.created_at
	`, documentName, domain.HashQuestion(question), question, answer, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving cached answer: %w", err)
	}
	return nil
}

// ListAnswers returns the document's cached answers, newest first.
func (c *answerCache) ListAnswers(ctx context.Context, documentName string) ([]domain.AnswerEntry, error) {
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT doc_name, question_hash, question, answer, created_at
		FROM qa_cache WHERE doc_name = ?
		ORDER BY created_at DESC, id DESC
	`, documentName)
	if err != nil {
		return nil, fmt.Errorf("querying cached answers: %w", err)
	}
	defer rows.Close()

	var entries []domain.AnswerEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e domain.AnswerEntry
		var createdAt sql.NullTime
		if err := rows.Scan(&e.DocumentName, &e.QuestionHash, &e.Question, &e.Answer, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning cached answer: %w", err)
		}
		if createdAt.Valid {
			e.CreatedAt = createdAt.Time
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cached answers: %w", err)
	}

	return entries, nil
}

// ==================== Helpers ====================

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var createdAt sql.NullTime
	var summary sql.NullString

	if err := row.Scan(&doc.ID, &doc.Name, &createdAt, &summary, &doc.ChunkCount); err != nil {
		return nil, err
	}

	if createdAt.Valid {
		doc.CreatedAt = createdAt.Time
	}
	if summary.Valid {
		s := summary.String
		doc.Summary = &s
	}

	return &doc, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
