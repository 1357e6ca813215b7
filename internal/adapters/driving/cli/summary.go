package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Manage cached document summaries",
}

var summaryGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Print the cached summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummaryGet,
}

var summarySetCmd = &cobra.Command{
	Use:   "set [name] [summary...]",
	Short: "Save a summary",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSummarySet,
}

var summaryClearCmd = &cobra.Command{
	Use:   "clear [name]",
	Short: "Remove the cached summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummaryClear,
}

var summaryGenerateCmd = &cobra.Command{
	Use:   "generate [name]",
	Short: "Summarise a document",
	Long:  `Prints the cached summary, generating and saving one first if none exists.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSummaryGenerate,
}

func init() {
	summaryCmd.AddCommand(summaryGetCmd)
	summaryCmd.AddCommand(summarySetCmd)
	summaryCmd.AddCommand(summaryClearCmd)
	summaryCmd.AddCommand(summaryGenerateCmd)
	rootCmd.AddCommand(summaryCmd)
}

func runSummaryGet(cmd *cobra.Command, args []string) error {
	if summaryService == nil {
		return errors.New("summary service not configured")
	}

	summary, err := summaryService.Get(context.Background(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Println("No cached summary found.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get summary: %w", err)
	}

	cmd.Println(summary)
	return nil
}

func runSummarySet(cmd *cobra.Command, args []string) error {
	if summaryService == nil {
		return errors.New("summary service not configured")
	}

	summary := strings.Join(args[1:], " ")
	if err := summaryService.Save(context.Background(), args[0], summary); err != nil {
		return documentError(args[0], err)
	}

	cmd.Printf("Saved summary for '%s'.\n", args[0])
	return nil
}

func runSummaryClear(cmd *cobra.Command, args []string) error {
	if summaryService == nil {
		return errors.New("summary service not configured")
	}

	if err := summaryService.Clear(context.Background(), args[0]); err != nil {
		return documentError(args[0], err)
	}

	cmd.Printf("Cleared summary for '%s'.\n", args[0])
	return nil
}

func runSummaryGenerate(cmd *cobra.Command, args []string) error {
	if summaryService == nil {
		return errors.New("summary service not configured")
	}

	summary, cached, err := summaryService.Summarize(context.Background(), args[0])
	if err != nil {
		return documentError(args[0], err)
	}

	cmd.Println(summary)
	if cached {
		cmd.Println(styles.Muted.Render("(cached)"))
	}
	return nil
}
