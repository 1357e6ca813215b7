package driven

import "context"

// AnswerGenerator produces an answer for a question about a stored document.
// This is an optional service - when nil, only cached answers are served.
//
// Implementations may include:
//   - Extractive composition from ranked excerpts (no model)
//   - An external command fed the prompt on stdin
type AnswerGenerator interface {
	// Generate returns the answer text. Errors are surfaced to the user and
	// the answer is not cached.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateTask says what kind of text is being generated.
type GenerateTask string

// Generation tasks.
const (
	// TaskAnswer answers Question about Document.
	TaskAnswer GenerateTask = "answer"

	// TaskSummary summarises Document. Question is empty.
	TaskSummary GenerateTask = "summary"
)

// GenerateRequest carries everything a generator may need.
type GenerateRequest struct {
	// Task selects answering or summarising.
	Task GenerateTask

	// Document is the name of the document being asked about.
	Document string

	// Question is the user's question as typed.
	Question string

	// Prompt is the rendered instruction for model-backed generators.
	Prompt string
}
