package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docqa/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docqa/internal/adapters/driven/generator"
	"github.com/custodia-labs/docqa/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docqa/internal/core/domain"
	"github.com/custodia-labs/docqa/internal/core/ports/driven"
	"github.com/custodia-labs/docqa/internal/core/ports/driving"
	"github.com/custodia-labs/docqa/internal/core/services"
	"github.com/custodia-labs/docqa/internal/logger"
	"github.com/custodia-labs/docqa/internal/normalisers"
	"github.com/custodia-labs/docqa/internal/postprocessors"
)

// Services used by the commands. They are wired once per process by
// initServices, or replaced directly by tests.
var (
	documentService    driving.DocumentService
	searchService      driving.SearchService
	answerService      driving.AnswerService
	summaryService     driving.SummaryService
	toolService        driving.ToolService
	settingsService    driving.SettingsService
	normaliserRegistry driven.NormaliserRegistry
)

var (
	// wired is set once services exist so nested executions skip wiring.
	wired bool

	store *sqlite.Store
)

// toolboxCaller lets the extractive generator reach the toolbox, which is
// only built after the generator it depends on.
type toolboxCaller struct {
	toolbox driving.ToolService
}

func (c *toolboxCaller) Call(ctx context.Context, tool, first, second string) (string, error) {
	if c.toolbox == nil {
		return "", fmt.Errorf("%w: tool %q called before wiring", domain.ErrGeneratorUnavailable, tool)
	}
	return c.toolbox.Call(ctx, tool, domain.ToolArgs{First: first, Second: second})
}

// initServices builds the configuration, storage and services for the
// command being run.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if wired || !needsServices(cmd) {
		return nil
	}

	if err := services.LoadEnvFile(".env"); err != nil {
		return err
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsSvc := services.NewSettingsService(configStore)
	settingsService = settingsSvc

	// Settings commands must work even when the stored settings are invalid.
	if isSettingsCommand(cmd) {
		return nil
	}

	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	path := dbPath
	if path == "" {
		path = settings.DBPath
	}
	store, err = sqlite.NewStore(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("database: %s", store.Path())

	if err := wireServices(store.DocumentStore(), store.AnswerCache(), settings); err != nil {
		_ = store.Close()
		store = nil
		return err
	}

	wired = true
	return nil
}

// wireServices builds every domain service on top of the given stores.
func wireServices(docs driven.DocumentStore, cache driven.AnswerCache, settings domain.Settings) error {
	registry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(registry)
	pipeline, err := postprocessors.NewDefaultPipeline(registry, settings.Chunking)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	documents := services.NewDocumentService(docs, pipeline, settings.MinTextLength)
	search := services.NewSearchService(docs, settings.Search)

	caller := &toolboxCaller{}
	gen, err := generator.New(settings.Generator, caller, documents)
	if err != nil {
		return fmt.Errorf("building generator: %w", err)
	}
	logger.Debug("generator: %s", settings.Generator.Type.Description())

	summaries := services.NewSummaryService(docs, gen)
	toolbox := services.NewToolbox(search, summaries, documents)
	caller.toolbox = toolbox

	documentService = documents
	searchService = search
	answerService = services.NewAnswerService(cache, docs, gen)
	summaryService = summaries
	toolService = toolbox
	normaliserRegistry = normalisers.NewDefaultRegistry()
	return nil
}

func closeServices(_ *cobra.Command, _ []string) error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	wired = false
	return err
}

func needsServices(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return false
	}
	return cmd.Runnable()
}

func isSettingsCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c == settingsCmd {
			return true
		}
	}
	return false
}
