package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View or change settings",
	Long: `Settings are read from the config file and may be overridden by
environment variables, including those in a .env file in the working
directory.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys and their environment variables",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	storage := settings.DBPath
	if storage == "" {
		storage = styles.Muted.Render("default")
	}

	cmd.Println(styles.Title.Render("Settings"))
	cmd.Printf("  Storage:         %s\n", storage)
	cmd.Printf("  Chunk size:      %d\n", settings.Chunking.Size)
	cmd.Printf("  Chunk overlap:   %d\n", settings.Chunking.Overlap)
	cmd.Printf("  Min text length: %d\n", settings.MinTextLength)
	cmd.Printf("  Top K:           %d\n", settings.Search.TopK)
	cmd.Printf("  Excerpt chars:   %d\n", settings.Search.ExcerptChars)
	cmd.Printf("  Generator:       %s\n", settings.Generator.Type.Description())
	if settings.Generator.Command != "" {
		cmd.Printf("  Command:         %s\n", settings.Generator.Command)
	}
	if settings.Generator.RatePerMinute > 0 {
		cmd.Printf("  Rate limit:      %d/min\n", settings.Generator.RatePerMinute)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("%s %s = %s\n", styles.Success.Render("✓"), args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		env, _ := services.EnvVar(key)
		cmd.Printf("%-28s %s\n", key, styles.Muted.Render(env))
	}
	return nil
}
