package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the document tools over MCP",
	Long: `Starts a Model Context Protocol server exposing the document tools and
stored documents as resources.

By default the server speaks over stdio. With --port it listens for
streamable HTTP connections on localhost instead.`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

var mcpPort int

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "Serve over HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(_ *cobra.Command, _ []string) error {
	if toolService == nil {
		return errors.New("tool service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Tools:    toolService,
		Document: documentService,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if mcpPort > 0 {
		return server.RunHTTP(ctx, fmt.Sprintf("localhost:%d", mcpPort))
	}
	return server.Run(ctx)
}
