// Package cli provides the cobra command tree for Echo.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	verbose   bool
	accountID string
)

// Services set by the composition root. Commands check for nil.
var (
	searchService    driving.SearchService
	assistantService driving.AssistantService
	authService      driving.AuthService
	settingsService  driving.SettingsService
	notifyService    driving.NotifyService
)

// Services holds the driving ports the commands use.
type Services struct {
	Search    driving.SearchService
	Assistant driving.AssistantService
	Auth      driving.AuthService
	Settings  driving.SettingsService
	Notify    driving.NotifyService

	// AccountID is the default for the --account flag.
	AccountID string
}

var rootCmd = &cobra.Command{
	Use:   "echo",
	Short: "Find documents across OneDrive and SharePoint",
	Long: `Echo searches your OneDrive and every SharePoint site you can reach,
ranks what it finds by relevance and answers HR and document questions.

Sign in once with 'echo auth login', then search or ask:
  echo search "budget report 2023"
  echo ask "can you get me the leave policy document"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVarP(&accountID, "account", "a", "default", "cached account to use")
}

// SetServices wires the services into the commands.
func SetServices(s Services) {
	searchService = s.Search
	assistantService = s.Assistant
	authService = s.Auth
	settingsService = s.Settings
	notifyService = s.Notify
	if s.AccountID != "" {
		accountID = s.AccountID
		rootCmd.PersistentFlags().Lookup("account").DefValue = s.AccountID
	}
}

// SetVersion sets the version printed by 'echo version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
