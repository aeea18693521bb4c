package driving

import "github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves settings from defaults, the config file and the environment.
	Get() (*domain.AppSettings, error)

	// Set stores a single configuration key in the config file.
	Set(key, value string) error

	// Keys lists the configuration keys understood by Set.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Validate checks that resolved settings can drive a search.
	Validate() error

	// ValidateEmbeddingConfig validates the embedding configuration by pinging the provider.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig validates the LLM configuration by pinging the provider.
	ValidateLLMConfig() error
}
