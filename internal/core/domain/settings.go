package domain

import (
	"fmt"
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// Interactive sign-in flows.
const (
	// LoginFlowDevice shows a code to enter on another device.
	LoginFlowDevice = "device"

	// LoginFlowBrowser opens the browser and receives the code on a loopback redirect.
	LoginFlowBrowser = "browser"
)

// GraphSettings configures the remote directory/storage API and sign-in.
type GraphSettings struct {
	// BaseURL is the API root (default https://graph.microsoft.com/v1.0).
	BaseURL string

	// Authority is the identity endpoint root (default https://login.microsoftonline.com).
	Authority string

	// TenantID selects the directory tenant ("common" when empty).
	TenantID string

	// ClientID is the registered application id.
	ClientID string

	// ClientSecret is the application secret, empty for public clients.
	ClientSecret string

	// Scopes are the OAuth scopes requested on sign-in and refresh.
	Scopes []string

	// LoginFlow is LoginFlowDevice or LoginFlowBrowser.
	LoginFlow string

	// RedirectPort is the loopback port for the browser flow, 0 for any free port.
	RedirectPort int
}

// TokenURL returns the OAuth token endpoint for the tenant.
func (g GraphSettings) TokenURL() string {
	return g.endpoint("token")
}

// DeviceAuthURL returns the OAuth device authorisation endpoint for the tenant.
func (g GraphSettings) DeviceAuthURL() string {
	return g.endpoint("devicecode")
}

// AuthURL returns the OAuth authorisation endpoint for the tenant.
func (g GraphSettings) AuthURL() string {
	return g.endpoint("authorize")
}

func (g GraphSettings) endpoint(name string) string {
	tenant := g.TenantID
	if tenant == "" {
		tenant = "common"
	}
	return fmt.Sprintf("%s/%s/oauth2/v2.0/%s", strings.TrimRight(g.Authority, "/"), tenant, name)
}

// InvokerSettings configures retry and throttling behaviour for remote calls.
type InvokerSettings struct {
	// MaxRetries bounds retries caused by 401 responses and transport errors.
	MaxRetries int

	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration

	// DefaultRetryAfter is used when a 429 carries no usable Retry-After.
	DefaultRetryAfter time.Duration

	// MaxThrottleWait caps the total time one call may spend waiting on 429s.
	MaxThrottleWait time.Duration

	// RequestsPerSecond paces outgoing calls. Zero disables pacing.
	RequestsPerSecond float64

	// Burst is the token bucket size for pacing.
	Burst int
}

// SearchSettings holds federated search behaviour configuration.
type SearchSettings struct {
	// Workers is the number of sites searched in parallel.
	Workers int

	// AccessCheck filters out shared files the caller cannot open.
	AccessCheck bool

	// Semantic enables the embedding ranking stage.
	Semantic bool

	// TopK truncates results. Zero means all.
	TopK int
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Model is the embedding model name.
	Model string

	// BaseURL is the OpenAI-compatible API endpoint.
	BaseURL string

	// APIKey is the API key.
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	return e.APIKey != ""
}

// LLMSettings holds chat model configuration used for intent detection and answers.
type LLMSettings struct {
	// Model is the chat model name.
	Model string

	// BaseURL is the OpenAI-compatible API endpoint.
	BaseURL string

	// APIKey is the API key.
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	return l.APIKey != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	// AccountID is the default account whose cached credential is used.
	AccountID string

	// DataDir holds the token cache database.
	DataDir string

	Graph     GraphSettings
	Invoker   InvokerSettings
	Search    SearchSettings
	Embedding EmbeddingSettings
	LLM       LLMSettings
}

// Validate checks that the settings can drive a search.
func (s *AppSettings) Validate() error {
	if s.Graph.BaseURL == "" {
		return fmt.Errorf("%w: graph base url is empty", ErrInvalidInput)
	}
	if len(s.Graph.Scopes) == 0 {
		return fmt.Errorf("%w: no OAuth scopes configured", ErrInvalidInput)
	}
	if s.Graph.LoginFlow != LoginFlowDevice && s.Graph.LoginFlow != LoginFlowBrowser {
		return fmt.Errorf("%w: login flow must be %q or %q", ErrInvalidInput, LoginFlowDevice, LoginFlowBrowser)
	}
	if s.Graph.RedirectPort < 0 || s.Graph.RedirectPort > 65535 {
		return fmt.Errorf("%w: redirect port out of range", ErrInvalidInput)
	}
	if s.Invoker.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must not be negative", ErrInvalidInput)
	}
	if s.Search.Workers < 1 {
		return fmt.Errorf("%w: search workers must be at least 1", ErrInvalidInput)
	}
	return nil
}

// DefaultAppSettings returns settings with sensible defaults.
// AI features (Embedding, LLM) are left unconfigured until an API key is set.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		AccountID: "default",
		Graph: GraphSettings{
			BaseURL:   "https://graph.microsoft.com/v1.0",
			Authority: "https://login.microsoftonline.com",
			TenantID:  "common",
			Scopes:    []string{"Files.Read.All", "Sites.Read.All", "Mail.Send", "User.Read", "offline_access"},
			LoginFlow: LoginFlowDevice,
		},
		Invoker: InvokerSettings{
			MaxRetries:        2,
			Timeout:           30 * time.Second,
			DefaultRetryAfter: 5 * time.Second,
			MaxThrottleWait:   2 * time.Minute,
			RequestsPerSecond: 8,
			Burst:             10,
		},
		Search: SearchSettings{
			Workers:  4,
			Semantic: true,
		},
		Embedding: EmbeddingSettings{
			Model: "text-embedding-3-small",
		},
		LLM: LLMSettings{
			Model: "gpt-4o",
		},
	}
}
