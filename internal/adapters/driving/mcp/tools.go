package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/services"
)

// SearchInput is the input schema for search_documents.
type SearchInput struct {
	Name  string `json:"name" jsonschema:"the document to search"`
	Query string `json:"query" jsonschema:"the words to look for"`
}

// NameInput is the input schema for tools taking only a document name.
type NameInput struct {
	Name string `json:"name" jsonschema:"the document name"`
}

// SaveSummaryInput is the input schema for save_summary.
type SaveSummaryInput struct {
	Name    string `json:"name" jsonschema:"the document name"`
	Summary string `json:"summary" jsonschema:"the summary text to cache"`
}

// ListInput is the empty input schema for list_documents.
type ListInput struct{}

// ToolOutput carries the text a tool produced.
type ToolOutput struct {
	Result string `json:"result"`
}

// registerTools registers one MCP tool per registry entry.
func (s *Server) registerTools() {
	addTool(s, services.ToolSearchDocuments, func(in SearchInput) domain.ToolArgs {
		return domain.ToolArgs{First: in.Name, Second: in.Query}
	})
	addTool(s, services.ToolGetCachedSummary, func(in NameInput) domain.ToolArgs {
		return domain.ToolArgs{First: in.Name}
	})
	addTool(s, services.ToolSaveSummary, func(in SaveSummaryInput) domain.ToolArgs {
		return domain.ToolArgs{First: in.Name, Second: in.Summary}
	})
	addTool(s, services.ToolListDocuments, func(ListInput) domain.ToolArgs {
		return domain.ToolArgs{}
	})
}

// addTool exposes a registry tool with a typed input schema.
// Tools missing from the registry are skipped.
func addTool[In any](s *Server, name string, toArgs func(In) domain.ToolArgs) {
	description, _, ok := s.ports.Tools.Describe(name)
	if !ok {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, ToolOutput, error) {
		return s.callTool(ctx, name, toArgs(in))
	})
}

// callTool dispatches through the registry.
func (s *Server) callTool(
	ctx context.Context,
	name string,
	args domain.ToolArgs,
) (*mcp.CallToolResult, ToolOutput, error) {
	out, err := s.ports.Tools.Call(ctx, name, args)
	if err != nil {
		return nil, ToolOutput{}, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: out}},
	}, ToolOutput{Result: out}, nil
}
