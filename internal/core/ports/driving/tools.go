package driving

import (
	"context"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// ToolService is the fixed tool registry offered to external agents.
type ToolService interface {
	// Names returns the tool names in sorted order.
	Names() []string

	// Describe returns a tool's description and parameter names.
	Describe(name string) (string, []string, bool)

	// Call runs a tool. Unknown names return domain.ErrUnknownTool.
	Call(ctx context.Context, name string, args domain.ToolArgs) (string, error)
}
