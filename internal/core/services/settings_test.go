package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driven/storage/memory"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

func envFrom(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func newTestSettingsService(env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)
	service.SetEnvLookup(envFrom(env))
	return service, store
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Graph, settings.Graph)
	assert.Equal(t, defaults.Invoker, settings.Invoker)
	assert.Equal(t, defaults.Search, settings.Search)
	assert.Equal(t, defaults.LLM.Model, settings.LLM.Model)
	assert.False(t, settings.LLM.IsConfigured())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service, store := newTestSettingsService(nil)
	_ = store.Set("graph.tenant_id", "contoso")
	_ = store.Set("graph.client_id", "client-123")
	_ = store.Set("invoker.max_retries", int64(5))
	_ = store.Set("invoker.timeout", "45s")
	_ = store.Set("invoker.requests_per_second", 2.5)
	_ = store.Set("search.access_check", true)
	_ = store.Set("search.semantic", false)
	_ = store.Set("search.top_k", int64(10))
	_ = store.Set("graph.scopes", []any{"Files.Read.All"})

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "contoso", settings.Graph.TenantID)
	assert.Equal(t, "client-123", settings.Graph.ClientID)
	assert.Equal(t, 5, settings.Invoker.MaxRetries)
	assert.Equal(t, 45*time.Second, settings.Invoker.Timeout)
	assert.InDelta(t, 2.5, settings.Invoker.RequestsPerSecond, 1e-9)
	assert.True(t, settings.Search.AccessCheck)
	assert.False(t, settings.Search.Semantic)
	assert.Equal(t, 10, settings.Search.TopK)
	assert.Equal(t, []string{"Files.Read.All"}, settings.Graph.Scopes)
}

func TestSettingsService_Get_EnvironmentOverrides(t *testing.T) {
	service, store := newTestSettingsService(map[string]string{
		EnvClientID:     "env-client",
		EnvClientSecret: "env-secret",
		EnvTenantID:     "env-tenant",
		EnvScope:        "User.Read, Files.Read.All",
		EnvAccessCheck:  "true",
		EnvOpenAIAPIKey: "sk-env",
		EnvGraphBaseURL: "http://localhost:9000/v1.0/",
	})
	_ = store.Set("graph.client_id", "file-client")
	_ = store.Set("llm.api_key", "sk-file")

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "env-client", settings.Graph.ClientID)
	assert.Equal(t, "env-secret", settings.Graph.ClientSecret)
	assert.Equal(t, "env-tenant", settings.Graph.TenantID)
	assert.Equal(t, []string{"User.Read", "Files.Read.All"}, settings.Graph.Scopes)
	assert.Equal(t, "http://localhost:9000/v1.0", settings.Graph.BaseURL)
	assert.True(t, settings.Search.AccessCheck)
	assert.Equal(t, "sk-env", settings.Embedding.APIKey)
	assert.Equal(t, "sk-file", settings.LLM.APIKey)
}

func TestSettingsService_Get_BlankEnvironmentIgnored(t *testing.T) {
	service, store := newTestSettingsService(map[string]string{EnvClientID: "  "})
	_ = store.Set("graph.client_id", "file-client")

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "file-client", settings.Graph.ClientID)
}

func TestSettingsService_Get_InvalidAccessCheck(t *testing.T) {
	service, _ := newTestSettingsService(map[string]string{EnvAccessCheck: "sometimes"})

	_, err := service.Get()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	service, store := newTestSettingsService(nil)

	require.NoError(t, service.Set("search.workers", "8"))
	require.NoError(t, service.Set("search.access_check", "true"))
	require.NoError(t, service.Set("invoker.requests_per_second", "1.5"))
	require.NoError(t, service.Set("invoker.timeout", "1m"))
	require.NoError(t, service.Set("graph.scopes", "User.Read Files.Read.All"))
	require.NoError(t, service.Set("llm.model", "gpt-4o-mini"))

	v, _ := store.Get("search.workers")
	assert.Equal(t, int64(8), v)
	v, _ = store.Get("graph.scopes")
	assert.Equal(t, []string{"User.Read", "Files.Read.All"}, v)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 8, settings.Search.Workers)
	assert.True(t, settings.Search.AccessCheck)
	assert.InDelta(t, 1.5, settings.Invoker.RequestsPerSecond, 1e-9)
	assert.Equal(t, time.Minute, settings.Invoker.Timeout)
	assert.Equal(t, "gpt-4o-mini", settings.LLM.Model)
}

func TestSettingsService_Set_Invalid(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	tests := []struct {
		key   string
		value string
	}{
		{"no.such.key", "x"},
		{"search.workers", "many"},
		{"search.semantic", "maybe"},
		{"invoker.requests_per_second", "fast"},
		{"invoker.timeout", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.ErrorIs(t, service.Set(tt.key, tt.value), domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	keys := service.Keys()

	assert.IsIncreasing(t, keys)
	assert.Contains(t, keys, "graph.client_id")
	assert.Contains(t, keys, "search.access_check")
	assert.Len(t, keys, len(settingKeys))
}

func TestSettingsService_Validate(t *testing.T) {
	service, store := newTestSettingsService(nil)
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput)

	_ = store.Set("graph.client_id", "client-123")
	assert.NoError(t, service.Validate())

	_ = store.Set("search.workers", int64(0))
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput)
}

func TestSettingsService_ValidateAI(t *testing.T) {
	service, store := newTestSettingsService(map[string]string{EnvOpenAIAPIKey: "sk-env"})
	assert.NoError(t, service.ValidateEmbeddingConfig())

	validator := &mockValidator{}
	service.aiValidator = validator
	_ = store.Set("llm.api_key", "sk-llm")

	require.NoError(t, service.ValidateEmbeddingConfig())
	require.NoError(t, service.ValidateLLMConfig())
	assert.Equal(t, "sk-env", validator.embeddingKey)
	assert.Equal(t, "sk-llm", validator.llmKey)

	service.SetEnvLookup(envFrom(nil))
	assert.ErrorIs(t, service.ValidateEmbeddingConfig(), domain.ErrEmbeddingUnavailable)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service, _ := newTestSettingsService(nil)

	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
