// Package command generates answers by running an external program.
//
// The rendered prompt is written to the program's stdin and its trimmed
// stdout is the answer. The request fields are also exported to the program
// as DOCQA_TASK, DOCQA_DOCUMENT and DOCQA_QUESTION.
package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/logger"
)

// Ensure Generator implements the interface.
var _ driven.AnswerGenerator = (*Generator)(nil)

// DefaultShell runs the command line.
const DefaultShell = "sh"

// Generator runs a shell command line per request.
type Generator struct {
	commandLine string
	shell       string
}

// New creates a command generator. The command line must not be empty.
func New(commandLine string) (*Generator, error) {
	commandLine = strings.TrimSpace(commandLine)
	if commandLine == "" {
		return nil, fmt.Errorf("generator command is empty")
	}
	return &Generator{commandLine: commandLine, shell: DefaultShell}, nil
}

// Generate runs the command and returns its output.
func (g *Generator) Generate(ctx context.Context, req driven.GenerateRequest) (string, error) {
	cmd := exec.CommandContext(ctx, g.shell, "-c", g.commandLine)
	cmd.Stdin = strings.NewReader(req.Prompt)
	cmd.Env = append(os.Environ(),
		"DOCQA_TASK="+string(req.Task),
		"DOCQA_DOCUMENT="+req.Document,
		"DOCQA_QUESTION="+req.Question,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	logger.Debug("Generator command finished in %s", time.Since(start).Round(time.Millisecond))

	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("running generator: %w: %s", err, msg)
		}
		return "", fmt.Errorf("running generator: %w", err)
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", fmt.Errorf("generator command produced no output")
	}
	return out, nil
}
