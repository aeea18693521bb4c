package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		ports := &Ports{Auth: &mockAuthService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Search: &mockSearchService{},
			Auth:   &mockAuthService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		ports := &Ports{Auth: &mockAuthService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingSearchService)
	})

	t.Run("nil auth service returns error", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingAuthService)
	})

	t.Run("assistant is optional", func(t *testing.T) {
		ports := &Ports{
			Search: &mockSearchService{},
			Auth:   &mockAuthService{},
		}
		assert.NoError(t, ports.Validate())
	})
}
