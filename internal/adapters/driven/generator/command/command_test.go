package command

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/ports/driven"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(DefaultShell); err != nil {
		t.Skip("no POSIX shell available")
	}
}

func TestNew_EmptyCommand(t *testing.T) {
	_, err := New("   ")
	assert.Error(t, err)
}

func TestGenerate_PromptOnStdin(t *testing.T) {
	requireShell(t)
	g, err := New("cat")
	require.NoError(t, err)

	got, err := g.Generate(context.Background(), driven.GenerateRequest{Prompt: "  hello prompt \n"})
	require.NoError(t, err)
	assert.Equal(t, "hello prompt", got)
}

func TestGenerate_Environment(t *testing.T) {
	requireShell(t)
	g, err := New(`printf '%s|%s|%s' "$DOCQA_TASK" "$DOCQA_DOCUMENT" "$DOCQA_QUESTION"`)
	require.NoError(t, err)

	got, err := g.Generate(context.Background(), driven.GenerateRequest{
		Task:     driven.TaskAnswer,
		Document: "policy",
		Question: "why?",
	})
	require.NoError(t, err)
	assert.Equal(t, "answer|policy|why?", got)
}

func TestGenerate_Failures(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"non-zero exit", "echo 'model offline' >&2; exit 3", "model offline"},
		{"empty output", "true", "no output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.command)
			require.NoError(t, err)

			_, err = g.Generate(context.Background(), driven.GenerateRequest{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	requireShell(t)
	g, err := New("sleep 5; echo late")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = g.Generate(ctx, driven.GenerateRequest{})
	assert.Error(t, err)
}
