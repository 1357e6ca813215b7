package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docqa/internal/core/domain"
)

// resetWiring clears everything initServices sets.
func resetWiring() {
	documentService = nil
	searchService = nil
	answerService = nil
	summaryService = nil
	toolService = nil
	settingsService = nil
	normaliserRegistry = nil
	wired = false
	configDir = ""
	dbPath = ""
	rootCmd.SetIn(nil)
}

func TestInitServices_SQLiteRoundTrip(t *testing.T) {
	defer resetWiring()
	isTerminal := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	defer func() { stdinIsTerminal = isTerminal }()

	dir := t.TempDir()
	flags := []string{"--config-dir", dir, "--db", filepath.Join(dir, "docqa.db")}

	out, err := execute(t, strings.NewReader(policyText), append(flags, "document", "add", "--name", "policy")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Stored 'policy' (1 chunks)")
	assert.False(t, wired, "store should be closed after the command")

	out, err = execute(t, nil, append(flags, "ask", "policy", "Is shipping free?")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Shipping is free for orders over fifty dollars. [chunk 0]")

	out, err = execute(t, nil, append(flags, "ask", "policy", "is shipping free?")...)
	require.NoError(t, err)
	assert.Contains(t, out, "(cached)")
}

func TestInitServices_SettingsSkipStorage(t *testing.T) {
	defer resetWiring()

	dir := t.TempDir()
	out, err := execute(t, nil, "--config-dir", dir, "settings", "set", "chunking.size", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "chunking.size = 1000")

	assert.NotNil(t, settingsService)
	assert.Nil(t, documentService)
	assert.FileExists(t, filepath.Join(dir, "config.toml"))
}

func TestToolboxCaller(t *testing.T) {
	caller := &toolboxCaller{}

	_, err := caller.Call(context.Background(), "list_documents", "", "")
	assert.ErrorIs(t, err, domain.ErrGeneratorUnavailable)

	cleanup := setupTestServices()
	defer cleanup()
	caller.toolbox = toolService

	out, err := caller.Call(context.Background(), "list_documents", "", "")
	require.NoError(t, err)
	assert.Equal(t, "No documents stored yet.", out)
}

func TestNeedsServices(t *testing.T) {
	assert.False(t, needsServices(versionCmd))
	assert.False(t, needsServices(documentCmd))
	assert.True(t, needsServices(documentListCmd))
}

func TestIsSettingsCommand(t *testing.T) {
	assert.True(t, isSettingsCommand(settingsSetCmd))
	assert.True(t, isSettingsCommand(settingsCmd))
	assert.False(t, isSettingsCommand(askCmd))
}
