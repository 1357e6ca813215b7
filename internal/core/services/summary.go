package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure SummaryService implements the interface.
var _ driving.SummaryService = (*SummaryService)(nil)

// SummaryService manages the per-document summary cache.
type SummaryService struct {
	store     driven.DocumentStore
	generator driven.AnswerGenerator
}

// NewSummaryService creates a new summary service.
// The generator is optional (can be nil); Summarize then only serves
// cached summaries.
func NewSummaryService(store driven.DocumentStore, generator driven.AnswerGenerator) *SummaryService {
	return &SummaryService{store: store, generator: generator}
}

// Get returns the cached summary or domain.ErrNotFound.
func (s *SummaryService) Get(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: document name is required", domain.ErrInvalidInput)
	}
	return s.store.GetSummary(ctx, name)
}

// Save stores the trimmed summary.
func (s *SummaryService) Save(ctx context.Context, name, summary string) error {
	name = strings.TrimSpace(name)
	summary = strings.TrimSpace(summary)
	if name == "" || summary == "" {
		return fmt.Errorf("%w: name and summary are required", domain.ErrInvalidInput)
	}
	return s.store.SetSummary(ctx, name, &summary)
}

// Clear removes the cached summary.
func (s *SummaryService) Clear(ctx context.Context, name string) error {
	return s.store.SetSummary(ctx, strings.TrimSpace(name), nil)
}

// Summarize returns the cached summary, generating and saving one on a miss.
func (s *SummaryService) Summarize(ctx context.Context, name string) (string, bool, error) {
	summary, err := s.Get(ctx, name)
	if err == nil {
		return summary, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", false, err
	}

	name = strings.TrimSpace(name)
	if _, err := s.store.GetDocument(ctx, name); err != nil {
		return "", false, err
	}
	if s.generator == nil {
		return "", false, domain.ErrGeneratorUnavailable
	}

	logger.Debug("No cached summary for %q, generating", name)
	summary, err = s.generator.Generate(ctx, driven.GenerateRequest{
		Task:     driven.TaskSummary,
		Document: name,
		Prompt:   SummaryPrompt(name),
	})
	if err != nil {
		return "", false, fmt.Errorf("generating summary: %w", err)
	}

	if err := s.Save(ctx, name, summary); err != nil {
		return "", false, err
	}
	return strings.TrimSpace(summary), false, nil
}
