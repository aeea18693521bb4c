package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAccountID         = "account.id"
	keyDataDir           = "data_dir"
	keyGraphBaseURL      = "graph.base_url"
	keyGraphAuthority    = "graph.authority"
	keyGraphTenantID     = "graph.tenant_id"
	keyGraphClientID     = "graph.client_id"
	keyGraphClientSecret = "graph.client_secret"
	keyGraphScopes       = "graph.scopes"
	keyGraphLoginFlow    = "graph.login_flow"
	keyGraphRedirectPort = "graph.redirect_port"
	keyMaxRetries        = "invoker.max_retries"
	keyTimeout           = "invoker.timeout"
	keyDefaultRetryAfter = "invoker.default_retry_after"
	keyMaxThrottleWait   = "invoker.max_throttle_wait"
	keyRequestsPerSecond = "invoker.requests_per_second"
	keyBurst             = "invoker.burst"
	keySearchWorkers     = "search.workers"
	keyAccessCheck       = "search.access_check"
	keySemantic          = "search.semantic"
	keyTopK              = "search.top_k"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
)

// Environment overrides, applied after the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvClientID     = "CLIENT_ID"
	EnvClientSecret = "CLIENT_SECRET"
	EnvTenantID     = "TENANT_ID"
	EnvScope        = "SCOPE"
	EnvAccessCheck  = "PERFORM_ACCESS_CHECK"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvGraphBaseURL = "GRAPH_BASE_URL"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindBool
	kindFloat
	kindDuration
	kindList
)

var settingKeys = map[string]keyKind{
	keyAccountID:         kindString,
	keyDataDir:           kindString,
	keyGraphBaseURL:      kindString,
	keyGraphAuthority:    kindString,
	keyGraphTenantID:     kindString,
	keyGraphClientID:     kindString,
	keyGraphClientSecret: kindString,
	keyGraphScopes:       kindList,
	keyGraphLoginFlow:    kindString,
	keyGraphRedirectPort: kindInt,
	keyMaxRetries:        kindInt,
	keyTimeout:           kindDuration,
	keyDefaultRetryAfter: kindDuration,
	keyMaxThrottleWait:   kindDuration,
	keyRequestsPerSecond: kindFloat,
	keyBurst:             kindInt,
	keySearchWorkers:     kindInt,
	keyAccessCheck:       kindBool,
	keySemantic:          kindBool,
	keyTopK:              kindInt,
	keyEmbedModel:        kindString,
	keyEmbedBaseURL:      kindString,
	keyEmbedAPIKey:       kindString,
	keyLLMModel:          kindString,
	keyLLMBaseURL:        kindString,
	keyLLMAPIKey:         kindString,
}

// SettingsService resolves application settings from defaults, the
// config store and the environment, in that order.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
// aiValidator may be nil.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		lookupEnv:   os.LookupEnv,
	}
}

// SetEnvLookup replaces the environment lookup, for tests.
func (s *SettingsService) SetEnvLookup(lookup func(string) (string, bool)) {
	s.lookupEnv = lookup
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	d := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		AccountID: s.getString(keyAccountID, d.AccountID),
		DataDir:   s.getString(keyDataDir, d.DataDir),
		Graph: domain.GraphSettings{
			BaseURL:      s.getString(keyGraphBaseURL, d.Graph.BaseURL),
			Authority:    s.getString(keyGraphAuthority, d.Graph.Authority),
			TenantID:     s.getString(keyGraphTenantID, d.Graph.TenantID),
			ClientID:     s.configStore.GetString(keyGraphClientID),
			ClientSecret: s.configStore.GetString(keyGraphClientSecret),
			Scopes:       s.getStringSlice(keyGraphScopes, d.Graph.Scopes),
			LoginFlow:    s.getString(keyGraphLoginFlow, d.Graph.LoginFlow),
			RedirectPort: s.getInt(keyGraphRedirectPort, d.Graph.RedirectPort),
		},
		Invoker: domain.InvokerSettings{
			MaxRetries:        s.getInt(keyMaxRetries, d.Invoker.MaxRetries),
			Timeout:           s.getDuration(keyTimeout, d.Invoker.Timeout),
			DefaultRetryAfter: s.getDuration(keyDefaultRetryAfter, d.Invoker.DefaultRetryAfter),
			MaxThrottleWait:   s.getDuration(keyMaxThrottleWait, d.Invoker.MaxThrottleWait),
			RequestsPerSecond: s.getFloat(keyRequestsPerSecond, d.Invoker.RequestsPerSecond),
			Burst:             s.getInt(keyBurst, d.Invoker.Burst),
		},
		Search: domain.SearchSettings{
			Workers:     s.getInt(keySearchWorkers, d.Search.Workers),
			AccessCheck: s.getBool(keyAccessCheck, d.Search.AccessCheck),
			Semantic:    s.getBool(keySemantic, d.Search.Semantic),
			TopK:        s.getInt(keyTopK, d.Search.TopK),
		},
		Embedding: domain.EmbeddingSettings{
			Model:   s.getString(keyEmbedModel, d.Embedding.Model),
			BaseURL: s.configStore.GetString(keyEmbedBaseURL), // Empty means the OpenAI API
			APIKey:  s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Model:   s.getString(keyLLMModel, d.LLM.Model),
			BaseURL: s.configStore.GetString(keyLLMBaseURL),
			APIKey:  s.configStore.GetString(keyLLMAPIKey),
		},
	}

	if err := s.applyEnv(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// applyEnv overlays environment variables on resolved settings.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) error {
	if v, ok := s.env(EnvClientID); ok {
		settings.Graph.ClientID = v
	}
	if v, ok := s.env(EnvClientSecret); ok {
		settings.Graph.ClientSecret = v
	}
	if v, ok := s.env(EnvTenantID); ok {
		settings.Graph.TenantID = v
	}
	if v, ok := s.env(EnvScope); ok {
		settings.Graph.Scopes = splitList(v)
	}
	if v, ok := s.env(EnvGraphBaseURL); ok {
		settings.Graph.BaseURL = strings.TrimRight(v, "/")
	}
	if v, ok := s.env(EnvAccessCheck); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", domain.ErrInvalidInput, EnvAccessCheck, v)
		}
		settings.Search.AccessCheck = b
	}
	if v, ok := s.env(EnvOpenAIAPIKey); ok {
		if settings.Embedding.APIKey == "" {
			settings.Embedding.APIKey = v
		}
		if settings.LLM.APIKey == "" {
			settings.LLM.APIKey = v
		}
	}
	return nil
}

func (s *SettingsService) env(name string) (string, bool) {
	v, ok := s.lookupEnv(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Set stores a single configuration key, converting the value to the key's type.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var stored any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		stored = int64(n)
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		stored = f
	case kindDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%w: %s must be a duration like 30s", domain.ErrInvalidInput, key)
		}
		stored = value
	case kindList:
		stored = splitList(value)
	default:
		stored = value
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the configuration keys understood by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Validate checks that resolved settings can drive a search.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if settings.Graph.ClientID == "" {
		return fmt.Errorf("%w: no client id; set %s or %s", domain.ErrInvalidInput, EnvClientID, keyGraphClientID)
	}
	return nil
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if d := s.configStore.GetDuration(key); d > 0 {
		return d
	}
	return defaultVal
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	if val := s.configStore.GetStringSlice(key); len(val) > 0 {
		return val
	}
	return defaultVal
}

// splitList splits a space or comma separated list.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
