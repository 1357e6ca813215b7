package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [name] [question...]",
	Short: "Ask a question about a document",
	Long: `Answers a question about a stored document.

Answers are cached per document. Asking the same question again, ignoring
case and surrounding whitespace, returns the cached answer without
generating a new one. Sources cited as [chunk N] are listed below the answer.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

var askNoSources bool

func init() {
	askCmd.Flags().BoolVar(&askNoSources, "no-sources", false, "Do not list cited chunks")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	name := args[0]
	question := strings.Join(args[1:], " ")

	answer, err := answerService.Ask(context.Background(), name, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if answer.Failed {
		cmd.Println(styles.Error.Render(answer.Text))
		return nil
	}

	cmd.Println(answer.Text)
	if answer.Cached {
		cmd.Println(styles.Muted.Render("(cached)"))
	}

	if askNoSources || len(answer.Citations) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println(styles.Title.Render("Sources"))
	for _, c := range answer.Citations {
		label := styles.Label.Render(fmt.Sprintf("[chunk %d]", c.Index))
		if !c.Found {
			cmd.Printf("%s %s\n", label, styles.Warning.Render("no longer in the document"))
			continue
		}
		cmd.Printf("%s %s\n", label, truncate(c.Content, 200))
	}
	return nil
}

// truncate shortens s to at most n runes on a single line.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
