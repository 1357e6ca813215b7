package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docqa/internal/citation"
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// Messages returned by Ask in place of an answer.
const (
	msgSelectDocument = "Select a document first."
	msgQuestionEmpty  = "Question is empty."
)

// AnswerService answers questions through the answer cache.
// A repeated question is served from the cache without invoking the
// generator. Failed generations are reported but never cached.
type AnswerService struct {
	cache     driven.AnswerCache
	chunks    citation.ChunkLookup
	generator driven.AnswerGenerator
}

// NewAnswerService creates a new answer service.
// The generator is optional (can be nil); without it only cached answers
// are served.
func NewAnswerService(
	cache driven.AnswerCache,
	chunks citation.ChunkLookup,
	generator driven.AnswerGenerator,
) *AnswerService {
	return &AnswerService{
		cache:     cache,
		chunks:    chunks,
		generator: generator,
	}
}

// Ask returns the answer to question about the named document.
func (s *AnswerService) Ask(ctx context.Context, name, question string) (*domain.Answer, error) {
	logger.Section("Ask")

	name = strings.TrimSpace(name)
	if name == "" {
		return &domain.Answer{Text: msgSelectDocument}, nil
	}
	if strings.TrimSpace(question) == "" {
		return &domain.Answer{Text: msgQuestionEmpty}, nil
	}

	cached, ok, err := s.cache.GetAnswer(ctx, name, question)
	if err != nil {
		return nil, fmt.Errorf("reading answer cache: %w", err)
	}
	if ok && cached != "" {
		logger.Debug("Cache hit for %q", domain.NormaliseQuestion(question))
		return s.withCitations(ctx, name, &domain.Answer{Text: cached, Cached: true})
	}

	text, err := s.generate(ctx, name, question)
	if err != nil {
		logger.Warn("Generation failed: %v", err)
		return &domain.Answer{Text: "Error: " + err.Error(), Failed: true}, nil
	}

	if err := s.cache.PutAnswer(ctx, name, question, text); err != nil {
		return nil, fmt.Errorf("writing answer cache: %w", err)
	}
	logger.Debug("Cached answer for %q", domain.NormaliseQuestion(question))

	return s.withCitations(ctx, name, &domain.Answer{Text: text})
}

// Cached lists the cached answers of a document, newest first.
func (s *AnswerService) Cached(ctx context.Context, name string) ([]domain.AnswerEntry, error) {
	return s.cache.ListAnswers(ctx, strings.TrimSpace(name))
}

func (s *AnswerService) generate(ctx context.Context, name, question string) (string, error) {
	if s.generator == nil {
		return "", domain.ErrGeneratorUnavailable
	}

	text, err := s.generator.Generate(ctx, driven.GenerateRequest{
		Task:     driven.TaskAnswer,
		Document: name,
		Question: question,
		Prompt:   AnswerPrompt(name, question),
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("generator returned an empty answer")
	}
	return text, nil
}

func (s *AnswerService) withCitations(ctx context.Context, name string, answer *domain.Answer) (*domain.Answer, error) {
	cited, err := citation.Resolve(ctx, s.chunks, name, citation.ExtractIndices(answer.Text))
	if err != nil {
		return nil, err
	}
	answer.Citations = cited
	return answer, nil
}
