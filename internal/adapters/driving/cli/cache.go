package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the answer cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list [name]",
	Short: "List cached answers for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheList,
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheList(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	entries, err := answerService.Cached(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list cached answers: %w", err)
	}

	if len(entries) == 0 {
		cmd.Printf("No cached answers for '%s'.\n", args[0])
		return nil
	}

	cmd.Println(styles.Title.Render(fmt.Sprintf("Cached answers for '%s' (%d)", args[0], len(entries))))
	for _, e := range entries {
		cmd.Printf("\n%s %s\n", styles.Label.Render("Q:"), e.Question)
		cmd.Printf("%s %s\n", styles.Label.Render("A:"), e.Answer)
		cmd.Println(styles.Muted.Render(e.CreatedAt.Local().Format(time.DateTime)))
	}
	return nil
}
