package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, 2, s.Invoker.MaxRetries)
	assert.Equal(t, 5*time.Second, s.Invoker.DefaultRetryAfter)
	assert.Equal(t, "text-embedding-3-small", s.Embedding.Model)
	assert.True(t, s.Search.Semantic)
	assert.False(t, s.Search.AccessCheck)
	assert.Contains(t, s.Graph.Scopes, "offline_access")
	require.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppSettings)
	}{
		{"empty base url", func(s *AppSettings) { s.Graph.BaseURL = "" }},
		{"no scopes", func(s *AppSettings) { s.Graph.Scopes = nil }},
		{"negative retries", func(s *AppSettings) { s.Invoker.MaxRetries = -1 }},
		{"no workers", func(s *AppSettings) { s.Search.Workers = 0 }},
		{"unknown login flow", func(s *AppSettings) { s.Graph.LoginFlow = "popup" }},
		{"redirect port", func(s *AppSettings) { s.Graph.RedirectPort = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestGraphSettings_Endpoints(t *testing.T) {
	g := GraphSettings{Authority: "https://login.example.com/", TenantID: "contoso"}

	assert.Equal(t, "https://login.example.com/contoso/oauth2/v2.0/token", g.TokenURL())
	assert.Equal(t, "https://login.example.com/contoso/oauth2/v2.0/devicecode", g.DeviceAuthURL())
	assert.Equal(t, "https://login.example.com/contoso/oauth2/v2.0/authorize", g.AuthURL())

	g.TenantID = ""
	assert.Equal(t, "https://login.example.com/common/oauth2/v2.0/token", g.TokenURL())
}

func TestEmbeddingAndLLMSettings_IsConfigured(t *testing.T) {
	assert.False(t, EmbeddingSettings{}.IsConfigured())
	assert.True(t, EmbeddingSettings{APIKey: "k"}.IsConfigured())
	assert.False(t, LLMSettings{}.IsConfigured())
	assert.True(t, LLMSettings{APIKey: "k"}.IsConfigured())
}
