package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.echo/config.toml.

Environment variables (CLIENT_ID, CLIENT_SECRET, TENANT_ID, SCOPE,
PERFORM_ACCESS_CHECK, OPENAI_API_KEY, GRAPH_BASE_URL) override the file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the settings that can be changed",
	RunE:  runSettingsKeys,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting. Lists are space or comma separated and
durations use Go syntax such as 30s or 2m.

Examples:
  echo settings set graph.client_id 00000000-0000-0000-0000-000000000000
  echo settings set search.access_check true
  echo settings set invoker.timeout 45s`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSettingsSet,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check settings and AI provider connectivity",
	RunE:  runSettingsValidate,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Graph]")
	cmd.Printf("  Base URL: %s\n", settings.Graph.BaseURL)
	cmd.Printf("  Tenant: %s\n", settings.Graph.TenantID)
	cmd.Printf("  Client ID: %s\n", orNotSet(settings.Graph.ClientID))
	cmd.Printf("  Client secret: %s\n", maskOrNotSet(settings.Graph.ClientSecret))
	cmd.Printf("  Scopes: %s\n", strings.Join(settings.Graph.Scopes, " "))
	cmd.Printf("  Login flow: %s\n", settings.Graph.LoginFlow)
	cmd.Println()

	cmd.Println("[Invoker]")
	cmd.Printf("  Max retries: %d\n", settings.Invoker.MaxRetries)
	cmd.Printf("  Timeout: %s\n", settings.Invoker.Timeout)
	cmd.Printf("  Default retry after: %s\n", settings.Invoker.DefaultRetryAfter)
	cmd.Printf("  Max throttle wait: %s\n", settings.Invoker.MaxThrottleWait)
	cmd.Printf("  Pacing: %.1f req/s, burst %d\n", settings.Invoker.RequestsPerSecond, settings.Invoker.Burst)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Workers: %d\n", settings.Search.Workers)
	cmd.Printf("  Access check: %t\n", settings.Search.AccessCheck)
	cmd.Printf("  Semantic ranking: %t\n", settings.Search.Semantic)
	cmd.Printf("  Top K: %d\n", settings.Search.TopK)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	cmd.Printf("  API Key: %s\n", maskOrNotSet(settings.Embedding.APIKey))
	cmd.Printf("  Status: %s\n", configured(settings.Embedding.IsConfigured()))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	cmd.Printf("  API Key: %s\n", maskOrNotSet(settings.LLM.APIKey))
	cmd.Printf("  Status: %s\n", configured(settings.LLM.IsConfigured()))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], strings.Join(args[1:], " ")
	if err := settingsService.Set(key, value); err != nil {
		return err
	}
	if strings.Contains(key, "secret") || strings.Contains(key, "api_key") {
		value = maskAPIKey(value)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Validate(); err != nil {
		return err
	}
	cmd.Println("Settings: ok")

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	var failed bool
	if settings.Embedding.IsConfigured() {
		if err := settingsService.ValidateEmbeddingConfig(); err != nil {
			cmd.Printf("Embedding: %v\n", err)
			failed = true
		} else {
			cmd.Println("Embedding: ok")
		}
	} else {
		cmd.Println("Embedding: not configured, results keep keyword order")
	}
	if settings.LLM.IsConfigured() {
		if err := settingsService.ValidateLLMConfig(); err != nil {
			cmd.Printf("LLM: %v\n", err)
			failed = true
		} else {
			cmd.Println("LLM: ok")
		}
	} else {
		cmd.Println("LLM: not configured, intent detection uses keywords only")
	}

	if failed {
		return errors.New("AI provider validation failed")
	}
	return nil
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func maskOrNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return maskAPIKey(s)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
