package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil tool service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingToolService)
	})

	t.Run("tools only creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Tools: &mockToolService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("all ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Tools:    &mockToolService{},
			Document: &mockDocumentService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}
