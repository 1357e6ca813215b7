package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

var searchCmd = &cobra.Command{
	Use:   "search [name] [query...]",
	Short: "Search a stored document",
	Long: `Ranks the chunks of a document against a query using BM25 and prints
the best matches, highest score first.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSearch,
}

var (
	searchTopK int
	searchJSON bool
)

// searchHit is the JSON form of one search result.
type searchHit struct {
	Chunk   int     `json:"chunk"`
	Score   float64 `json:"score"`
	Excerpt string  `json:"excerpt"`
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "Maximum number of results (default: search.top_k)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	name := args[0]
	query := strings.Join(args[1:], " ")

	results, err := searchService.Search(context.Background(), name, query, domain.SearchOptions{TopK: searchTopK})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		hits := make([]searchHit, len(results))
		for i, r := range results {
			hits[i] = searchHit{Chunk: r.Index, Score: r.Score, Excerpt: r.Excerpt}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}

	if len(results) == 0 {
		cmd.Printf("No results found for '%s' in '%s'.\n", query, name)
		return nil
	}

	cmd.Printf("Found %d results for '%s' in '%s':\n\n", len(results), query, name)
	for _, r := range results {
		cmd.Printf("%s %s\n", styles.Label.Render(fmt.Sprintf("[chunk %d]", r.Index)),
			styles.Muted.Render(fmt.Sprintf("score %.4f", r.Score)))
		cmd.Printf("  %s\n\n", r.Excerpt)
	}
	return nil
}
