package mcp

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
)

// mockToolService is a mock implementation of driving.ToolService.
type mockToolService struct {
	out      string
	err      error
	lastName string
	lastArgs domain.ToolArgs
}

func (m *mockToolService) Names() []string {
	return []string{"get_cached_summary", "list_documents", "save_summary", "search_documents"}
}

func (m *mockToolService) Describe(name string) (string, []string, bool) {
	return "mock " + name, nil, true
}

func (m *mockToolService) Call(_ context.Context, name string, args domain.ToolArgs) (string, error) {
	m.lastName = name
	m.lastArgs = args
	return m.out, m.err
}

// mockDocumentService implements the document reads used by resources.
// Other methods panic through the nil embedded interface.
type mockDocumentService struct {
	driving.DocumentService
	docs []domain.Document
	text map[string]string
	err  error
}

func (m *mockDocumentService) List(context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocumentService) FullText(_ context.Context, name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	text, ok := m.text[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}
