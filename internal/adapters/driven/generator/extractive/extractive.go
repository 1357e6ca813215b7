// Package extractive answers questions by quoting the best matching
// sentences of a document. It needs no model: excerpts come from the
// search_documents tool and every quoted sentence carries its chunk citation.
package extractive

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/custodia-labs/docqa/internal/citation"
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/postprocessors/tokenizer"
)

// Ensure Generator implements the interface.
var _ driven.AnswerGenerator = (*Generator)(nil)

// NoAnswer is returned when no excerpt shares a term with the question.
const NoAnswer = "I cannot find this in the document."

const (
	searchTool      = "search_documents"
	defaultMaxQuote = 3
	minTermLength   = 3
)

// resultLine matches one line of search_documents output.
var resultLine = regexp.MustCompile(`^\[chunk (\d+)\] (.*)$`)

// ToolCaller dispatches a named tool with positional arguments.
type ToolCaller interface {
	Call(ctx context.Context, tool string, first, second string) (string, error)
}

// ChunkSource reads the stored chunks of a document.
type ChunkSource interface {
	Chunks(ctx context.Context, name string) ([]domain.Chunk, error)
}

// Generator composes cited answers from document text.
type Generator struct {
	tools    ToolCaller
	source   ChunkSource
	maxQuote int
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxQuotes limits how many sentences an answer or summary quotes.
func WithMaxQuotes(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxQuote = n
		}
	}
}

// New creates an extractive generator.
func New(tools ToolCaller, source ChunkSource, opts ...Option) *Generator {
	g := &Generator{
		tools:    tools,
		source:   source,
		maxQuote: defaultMaxQuote,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate answers or summarises depending on the request task.
func (g *Generator) Generate(ctx context.Context, req driven.GenerateRequest) (string, error) {
	switch req.Task {
	case driven.TaskSummary:
		return g.summarise(ctx, req.Document)
	case driven.TaskAnswer, "":
		return g.answer(ctx, req.Document, req.Question)
	default:
		return "", fmt.Errorf("unsupported task %q", req.Task)
	}
}

func (g *Generator) answer(ctx context.Context, name, question string) (string, error) {
	out, err := g.tools.Call(ctx, searchTool, name, question)
	if err != nil {
		return "", fmt.Errorf("searching %q: %w", name, err)
	}

	excerpts := parseResults(out)
	if len(excerpts) == 0 {
		// The tool replied with a message instead of results.
		return "", fmt.Errorf("no excerpts: %s", out)
	}

	terms := questionTerms(question)
	var quotes []string
	for _, ex := range excerpts {
		sentence, score := bestSentence(ex.text, terms)
		if score == 0 {
			continue
		}
		quotes = append(quotes, sentence+" "+citation.Format(ex.index))
		if len(quotes) == g.maxQuote {
			break
		}
	}

	if len(quotes) == 0 {
		return NoAnswer, nil
	}
	return strings.Join(quotes, "\n"), nil
}

func (g *Generator) summarise(ctx context.Context, name string) (string, error) {
	if g.source == nil {
		return "", fmt.Errorf("summaries need a chunk source")
	}
	chunks, err := g.source.Chunks(ctx, name)
	if err != nil {
		return "", fmt.Errorf("reading chunks of %q: %w", name, err)
	}

	var quotes []string
	for _, c := range chunks {
		sentences := splitSentences(c.Content)
		if len(sentences) == 0 {
			continue
		}
		quotes = append(quotes, sentences[0]+" "+citation.Format(c.Index))
		if len(quotes) == g.maxQuote {
			break
		}
	}

	if len(quotes) == 0 {
		return "", fmt.Errorf("document %q has no text to summarise", name)
	}
	return strings.Join(quotes, " "), nil
}

type excerpt struct {
	index int
	text  string
}

func parseResults(out string) []excerpt {
	var results []excerpt
	for _, line := range strings.Split(out, "\n") {
		m := resultLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		results = append(results, excerpt{index: idx, text: m[2]})
	}
	return results
}

func questionTerms(question string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, tok := range tokenizer.Tokenize(question) {
		if len(tok) >= minTermLength {
			terms[tok] = struct{}{}
		}
	}
	return terms
}

// bestSentence returns the sentence sharing the most distinct terms with
// the question. Earlier sentences win ties.
func bestSentence(text string, terms map[string]struct{}) (string, int) {
	var best string
	bestScore := 0
	for _, s := range splitSentences(text) {
		seen := make(map[string]struct{})
		for _, tok := range tokenizer.Tokenize(s) {
			if _, ok := terms[tok]; ok {
				seen[tok] = struct{}{}
			}
		}
		if len(seen) > bestScore {
			best, bestScore = s, len(seen)
		}
	}
	return best, bestScore
}

// splitSentences splits on ., ! or ? followed by whitespace, and on line
// breaks. Terminators stay with their sentence.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0

	flush := func(end int) {
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			sentences = append(sentences, s)
		}
		start = end
	}

	for i, r := range runes {
		switch {
		case r == '\n':
			flush(i)
		case (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]):
			flush(i + 1)
		}
	}
	flush(len(runes))
	return sentences
}
