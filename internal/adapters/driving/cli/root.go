// Package cli provides the docqa command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
	dbPath    string
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Ask questions about stored documents",
	Long: `docqa stores plain-text documents, splits them into overlapping chunks
and answers questions about them using BM25-ranked excerpts.

Answers are cached per document, and the same tools are exposed to
external agents over the Model Context Protocol.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initServices,
	PersistentPostRunE: closeServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.docqa)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (overrides storage.path)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
