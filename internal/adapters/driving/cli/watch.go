package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa/internal/connectors/filesystem"
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Keep a directory of documents in sync",
	Long: `Ingests every supported file at the top level of a directory, then
watches it. Created or modified files are re-ingested and removed files are
deleted. Each file is stored under its base name.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var watchOnce bool

func init() {
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Ingest the directory and exit without watching")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil || normaliserRegistry == nil {
		return errors.New("document service not configured")
	}

	conn := filesystem.New(args[0])
	if err := conn.Validate(); err != nil {
		return err
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stored, failed := syncDirectory(ctx, cmd, conn)
	cmd.Printf("Synced %s: %d stored, %d failed\n", conn.RootPath(), stored, failed)

	if watchOnce {
		return nil
	}

	changes, err := conn.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", conn.RootPath(), err)
	}

	cmd.Println(styles.Muted.Render("Watching for changes. Press Ctrl+C to stop."))
	for change := range changes {
		if err := applyChange(ctx, cmd, change); err != nil {
			logger.Warn("%s: %v", change.Document.Name, err)
		}
	}
	return nil
}

// syncDirectory ingests every document the connector yields.
func syncDirectory(ctx context.Context, cmd *cobra.Command, conn *filesystem.Connector) (stored, failed int) {
	docs, errs := conn.FullSync(ctx)

	for docs != nil || errs != nil {
		select {
		case raw, ok := <-docs:
			if !ok {
				docs = nil
				continue
			}
			if err := ingestRaw(ctx, cmd, raw); err != nil {
				logger.Warn("%s: %v", raw.Name, err)
				failed++
				continue
			}
			stored++
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("sync: %v", err)
			failed++
		}
	}
	return stored, failed
}

// ingestRaw extracts the text of raw and stores it under raw.Name.
func ingestRaw(ctx context.Context, cmd *cobra.Command, raw domain.RawDocument) error {
	text, err := normaliserRegistry.Normalise(ctx, &raw)
	if err != nil {
		return err
	}

	result, err := documentService.Ingest(ctx, raw.Name, text)
	if err != nil {
		return err
	}

	cmd.Printf("%s %s (%d chunks)\n", styles.Success.Render("✓"), result.Name, result.ChunkCount)
	return nil
}

// applyChange mirrors one filesystem change into the document store.
func applyChange(ctx context.Context, cmd *cobra.Command, change domain.RawDocumentChange) error {
	if change.Type == domain.ChangeDeleted {
		if err := documentService.Delete(ctx, change.Document.Name); err != nil {
			return err
		}
		cmd.Printf("%s %s\n", styles.Warning.Render("✗"), change.Document.Name)
		return nil
	}
	return ingestRaw(ctx, cmd, change.Document)
}
