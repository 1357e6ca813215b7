package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCmd_HasSubcommands(t *testing.T) {
	commands := documentCmd.Commands()
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"add", "list", "show", "text", "chunks", "delete"}, names)
}

func TestDocumentAddCmd_Flags(t *testing.T) {
	for name, shorthand := range map[string]string{"type": "t", "name": "n"} {
		flag := documentAddCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, shorthand, flag.Shorthand)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestDocumentAddCmd_TooManyArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, nil, "document", "add", "a.txt", "b.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestDocumentAddCmd_StdinRequiresName(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	for _, args := range [][]string{{"document", "add"}, {"document", "add", "-"}} {
		_, err := execute(t, strings.NewReader(policyText), args...)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "a name is required when reading stdin")
	}
}

func TestDocumentAddCmd_NameFromFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "refund.policy.txt")
	require.NoError(t, os.WriteFile(path, []byte(policyText), 0o600))

	out, err := execute(t, nil, "document", "add", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Stored 'refund.policy' (1 chunks)")

	out, err = execute(t, nil, "document", "show", "refund.policy")
	require.NoError(t, err)
	assert.Contains(t, out, "Document: refund.policy")
}

func TestDocumentAddCmd_FromStdin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, strings.NewReader(policyText), "document", "add", "--name", "policy")

	require.NoError(t, err)
	assert.Contains(t, out, "Stored 'policy' (1 chunks)")
}

func TestDocumentAddCmd_FromMarkdownFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "policy.md")
	require.NoError(t, os.WriteFile(path, []byte("# Refunds\n\n**Refunds** are allowed within 14 days."), 0o600))

	out, err := execute(t, nil, "document", "add", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Stored 'policy'")

	out, err = execute(t, nil, "document", "text", "policy")
	require.NoError(t, err)
	assert.Contains(t, out, "Refunds are allowed within 14 days.")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "#")
}

func TestDocumentAddCmd_TypeOverride(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, strings.NewReader(policyText), "document", "add", "-n", "policy", "--type", "application/pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract text")
}

func TestDocumentAddCmd_TooShort(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, strings.NewReader("tiny"), "document", "add", "--name", "policy")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not extract meaningful text from stdin")
}

func TestDocumentAddCmd_TerminalStdin(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	stdinIsTerminal = func() bool { return true }

	_, err := execute(t, nil, "document", "add", "--name", "policy")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input")
}

func TestDocumentAddCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, nil, "document", "add", "--name", "policy", filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}

func TestDocumentListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, nil, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents stored yet.")
}

func TestDocumentListCmd_ShowsDocuments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	storePolicy(t)

	out, err := execute(t, nil, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Documents (1)")
	assert.Contains(t, out, "policy")
	assert.Contains(t, out, "1 chunks")
}

func TestDocumentShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	storePolicy(t)

	out, err := execute(t, nil, "document", "show", "policy")

	require.NoError(t, err)
	assert.Contains(t, out, "Document: policy")
	assert.Contains(t, out, "Chunks:")
	assert.Contains(t, out, "none")
}

func TestDocumentShowCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, nil, "document", "show", "missing")

	require.Error(t, err)
	assert.Equal(t, "document 'missing' not found", err.Error())
}

func TestDocumentChunksCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	storePolicy(t)

	out, err := execute(t, nil, "document", "chunks", "policy")

	require.NoError(t, err)
	assert.Contains(t, out, "[chunk 0]")
	assert.Contains(t, out, "Shipping is free")
}

func TestDocumentDeleteCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	storePolicy(t)

	out, err := execute(t, nil, "document", "delete", "policy")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 'policy'")

	_, err = execute(t, nil, "document", "show", "policy")
	assert.Error(t, err)
}
