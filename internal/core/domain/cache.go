package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// AnswerEntry is a cached answer for one question about one document.
type AnswerEntry struct {
	// DocumentName is the name of the document the question was about.
	DocumentName string

	// QuestionHash is the hex SHA-256 of the normalised question.
	QuestionHash string

	// Question is the question as originally asked.
	Question string

	// Answer is the cached answer text.
	Answer string

	// CreatedAt is when the entry was last written.
	CreatedAt time.Time
}

// NormaliseQuestion trims and lower-cases a question.
// Two questions share a cache entry iff their normalised forms are equal.
func NormaliseQuestion(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// HashQuestion returns the cache key hash for a question.
func HashQuestion(q string) string {
	sum := sha256.Sum256([]byte(NormaliseQuestion(q)))
	return hex.EncodeToString(sum[:])
}
