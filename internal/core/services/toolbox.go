package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
)

// Ensure Toolbox implements the interface.
var _ driving.ToolService = (*Toolbox)(nil)

// Tool names exposed to agents.
const (
	ToolSearchDocuments  = "search_documents"
	ToolGetCachedSummary = "get_cached_summary"
	ToolSaveSummary      = "save_summary"
	ToolListDocuments    = "list_documents"
)

const (
	msgNoSummary        = "No cached summary found."
	msgSummaryArgs      = "Name and summary are required."
	msgSummarySaved     = "Saved summary for '%s'."
	msgNoDocumentsFound = "No documents stored yet."
)

// ToolArgs holds the positional string arguments of a tool call.
type ToolArgs = domain.ToolArgs

// ToolFunc executes a tool. Invalid input is reported in the returned text;
// only infrastructure failures produce an error.
type ToolFunc func(ctx context.Context, args ToolArgs) (string, error)

// Tool is one entry of the registry.
type Tool struct {
	Name        string
	Description string
	// Params names the arguments in ToolArgs slot order.
	Params []string
	Call   ToolFunc
}

// Toolbox is the fixed set of tools available to an external reasoning
// agent. It is built once and never modified.
type Toolbox struct {
	tools map[string]Tool
}

// NewToolbox wires the tools to their services.
func NewToolbox(
	search driving.SearchService,
	summaries driving.SummaryService,
	documents driving.DocumentService,
) *Toolbox {
	tools := []Tool{
		{
			Name:        ToolSearchDocuments,
			Description: "Search a stored document for relevant excerpts using BM25 ranking. Returns lines of the form [chunk <index>] <excerpt>.",
			Params:      []string{"name", "query"},
			Call: func(ctx context.Context, args ToolArgs) (string, error) {
				return search.SearchText(ctx, args.First, args.Second)
			},
		},
		{
			Name:        ToolGetCachedSummary,
			Description: "Retrieve the cached summary for a document, if one exists.",
			Params:      []string{"name"},
			Call: func(ctx context.Context, args ToolArgs) (string, error) {
				name := strings.TrimSpace(args.First)
				if name == "" {
					return msgNameRequired, nil
				}
				summary, err := summaries.Get(ctx, name)
				if errors.Is(err, domain.ErrNotFound) {
					return msgNoSummary, nil
				}
				if err != nil {
					return "", err
				}
				return summary, nil
			},
		},
		{
			Name:        ToolSaveSummary,
			Description: "Save a summary for a document in the cache.",
			Params:      []string{"name", "summary"},
			Call: func(ctx context.Context, args ToolArgs) (string, error) {
				name := strings.TrimSpace(args.First)
				if name == "" || strings.TrimSpace(args.Second) == "" {
					return msgSummaryArgs, nil
				}
				if err := summaries.Save(ctx, name, args.Second); err != nil {
					return "", err
				}
				return fmt.Sprintf(msgSummarySaved, name), nil
			},
		},
		{
			Name:        ToolListDocuments,
			Description: "List stored documents, most recent first.",
			Params:      nil,
			Call: func(ctx context.Context, _ ToolArgs) (string, error) {
				docs, err := documents.List(ctx)
				if err != nil {
					return "", err
				}
				if len(docs) == 0 {
					return msgNoDocumentsFound, nil
				}
				lines := make([]string, len(docs))
				for i, d := range docs {
					lines[i] = fmt.Sprintf("- %s (%s, %d chunks)",
						d.Name, d.CreatedAt.Format("2006-01-02 15:04"), d.ChunkCount)
				}
				return strings.Join(lines, "\n"), nil
			},
		},
	}

	tb := &Toolbox{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		tb.tools[t.Name] = t
	}
	return tb
}

// Lookup returns the named tool.
func (tb *Toolbox) Lookup(name string) (Tool, bool) {
	t, ok := tb.tools[name]
	return t, ok
}

// Describe returns the description and parameter names of a tool.
func (tb *Toolbox) Describe(name string) (string, []string, bool) {
	t, ok := tb.tools[name]
	return t.Description, t.Params, ok
}

// Names returns the tool names in sorted order.
func (tb *Toolbox) Names() []string {
	names := make([]string, 0, len(tb.tools))
	for name := range tb.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs the named tool.
func (tb *Toolbox) Call(ctx context.Context, name string, args ToolArgs) (string, error) {
	t, ok := tb.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}
	return t.Call(ctx, args)
}
