package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Use the agent tools directly",
	Long: `Lists or invokes the tools offered to external agents. Tool results are
printed exactly as an agent would receive them.`,
}

var toolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available tools",
	Args:  cobra.NoArgs,
	RunE:  runToolList,
}

var toolCallCmd = &cobra.Command{
	Use:   "call [tool] [arg1] [arg2]",
	Short: "Invoke a tool",
	Args:  cobra.RangeArgs(1, 3),
	RunE:  runToolCall,
}

func init() {
	toolCmd.AddCommand(toolListCmd)
	toolCmd.AddCommand(toolCallCmd)
	rootCmd.AddCommand(toolCmd)
}

func runToolList(cmd *cobra.Command, _ []string) error {
	if toolService == nil {
		return errors.New("tool service not configured")
	}

	for _, name := range toolService.Names() {
		description, params, _ := toolService.Describe(name)
		cmd.Printf("%s(%s)\n", styles.Label.Render(name), strings.Join(params, ", "))
		cmd.Printf("  %s\n", description)
	}
	return nil
}

func runToolCall(cmd *cobra.Command, args []string) error {
	if toolService == nil {
		return errors.New("tool service not configured")
	}

	var toolArgs domain.ToolArgs
	if len(args) > 1 {
		toolArgs.First = args[1]
	}
	if len(args) > 2 {
		toolArgs.Second = args[2]
	}

	result, err := toolService.Call(context.Background(), args[0], toolArgs)
	if errors.Is(err, domain.ErrUnknownTool) {
		return fmt.Errorf("unknown tool '%s' (available: %s)", args[0], strings.Join(toolService.Names(), ", "))
	}
	if err != nil {
		return fmt.Errorf("tool call failed: %w", err)
	}

	cmd.Println(result)
	return nil
}
