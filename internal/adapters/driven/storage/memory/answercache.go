package memory

import (
	"context"
	"sort"
	"time"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

type answerEntry struct {
	entry domain.AnswerEntry
	seq   int
}

// GetAnswer returns the cached answer for the normalised question.
func (s *Store) GetAnswer(_ context.Context, documentName, question string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.answers[documentName][domain.HashQuestion(question)]
	if !ok {
		return "", false, nil
	}
	return stored.entry.Answer, true, nil
}

// PutAnswer stores the answer, overwriting any entry for the same key.
func (s *Store) PutAnswer(_ context.Context, documentName, question, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.answers[documentName]
	if !ok {
		entries = make(map[string]answerEntry)
		s.answers[documentName] = entries
	}

	s.seq++
	hash := domain.HashQuestion(question)
	entries[hash] = answerEntry{
		entry: domain.AnswerEntry{
			DocumentName: documentName,
			QuestionHash: hash,
			Question:     question,
			Answer:       answer,
			CreatedAt:    time.Now().UTC(),
		},
		seq: s.seq,
	}
	return nil
}

// ListAnswers returns the document's cached answers, newest first.
func (s *Store) ListAnswers(_ context.Context, documentName string) ([]domain.AnswerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := make([]answerEntry, 0, len(s.answers[documentName]))
	for _, e := range s.answers[documentName] {
		stored = append(stored, e)
	}
	sort.Slice(stored, func(i, j int) bool { return stored[i].seq > stored[j].seq })

	entries := make([]domain.AnswerEntry, len(stored))
	for i, e := range stored {
		entries[i] = e.entry
	}
	return entries, nil
}
