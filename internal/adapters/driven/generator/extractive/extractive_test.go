package extractive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

type stubTools struct {
	out  string
	err  error
	args [3]string
}

func (s *stubTools) Call(_ context.Context, tool, first, second string) (string, error) {
	s.args = [3]string{tool, first, second}
	return s.out, s.err
}

type stubSource struct {
	chunks []domain.Chunk
	err    error
}

func (s *stubSource) Chunks(context.Context, string) ([]domain.Chunk, error) {
	return s.chunks, s.err
}

func ask(t *testing.T, g *Generator, question string) (string, error) {
	t.Helper()
	return g.Generate(context.Background(), driven.GenerateRequest{
		Task:     driven.TaskAnswer,
		Document: "policy",
		Question: question,
	})
}

func TestGenerate_Answer(t *testing.T) {
	tools := &stubTools{out: "[chunk 2] Shipping is free. Refunds are allowed within 14 days.\n" +
		"[chunk 0] Contact support by email."}
	g := New(tools, nil)

	got, err := ask(t, g, "When are refunds allowed?")
	require.NoError(t, err)
	assert.Equal(t, "Refunds are allowed within 14 days. [chunk 2]", got)
	assert.Equal(t, [3]string{"search_documents", "policy", "When are refunds allowed?"}, tools.args)
}

func TestGenerate_AnswerKeepsRankOrder(t *testing.T) {
	tools := &stubTools{out: "[chunk 4] Refund requests go to billing.\n" +
		"[chunk 1] A refund takes five days.\n" +
		"[chunk 3] Refund again.\n" +
		"[chunk 5] Refund once more."}
	g := New(tools, nil, WithMaxQuotes(2))

	got, err := ask(t, g, "refund")
	require.NoError(t, err)
	assert.Equal(t, "Refund requests go to billing. [chunk 4]\nA refund takes five days. [chunk 1]", got)
}

func TestGenerate_NoMatchingSentence(t *testing.T) {
	g := New(&stubTools{out: "[chunk 0] Nothing relevant here."}, nil)

	got, err := ask(t, g, "warranty terms")
	require.NoError(t, err)
	assert.Equal(t, NoAnswer, got)
}

func TestGenerate_ToolMessageIsError(t *testing.T) {
	g := New(&stubTools{out: "No chunks found for 'policy'."}, nil)

	_, err := ask(t, g, "refunds")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No chunks found")
}

func TestGenerate_ToolError(t *testing.T) {
	boom := errors.New("boom")
	g := New(&stubTools{err: boom}, nil)

	_, err := ask(t, g, "refunds")
	assert.ErrorIs(t, err, boom)
}

func TestGenerate_Summary(t *testing.T) {
	source := &stubSource{chunks: []domain.Chunk{
		{Index: 0, Content: "Refund policy. Details follow."},
		{Index: 1, Content: "   "},
		{Index: 2, Content: "Shipping rules apply\nto all orders."},
	}}
	g := New(nil, source)

	got, err := g.Generate(context.Background(), driven.GenerateRequest{Task: driven.TaskSummary, Document: "policy"})
	require.NoError(t, err)
	assert.Equal(t, "Refund policy. [chunk 0] Shipping rules apply [chunk 2]", got)
}

func TestGenerate_SummaryErrors(t *testing.T) {
	ctx := context.Background()
	req := driven.GenerateRequest{Task: driven.TaskSummary, Document: "policy"}

	_, err := New(nil, nil).Generate(ctx, req)
	assert.Error(t, err)

	_, err = New(nil, &stubSource{}).Generate(ctx, req)
	assert.Error(t, err)

	_, err = New(nil, &stubSource{err: domain.ErrNotFound}).Generate(ctx, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = New(nil, nil).Generate(ctx, driven.GenerateRequest{Task: "translate"})
	assert.Error(t, err)
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"Version 1.5 ships.", []string{"Version 1.5 ships."}},
		{"line one\nline two", []string{"line one", "line two"}},
		{"no terminator", []string{"no terminator"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitSentences(tt.in), "input %q", tt.in)
	}
}
