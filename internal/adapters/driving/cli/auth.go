package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Microsoft account sign-in",
	Long: `Sign in to Microsoft 365 and manage the
cached credential used for searches.

The registered application is configured with CLIENT_ID and TENANT_ID (in the
environment or a .env file) or with 'echo settings set graph.client_id <id>'.

Examples:
  echo auth login
  echo auth login --client-secret
  echo auth status
  echo auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to Microsoft 365",
	Long: `Sign in with a device code (default) or in the browser when
graph.login_flow is set to "browser". The browser flow needs
http://localhost registered as a redirect URI of the application.`,
	RunE:  runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the signed-in account",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the cached credential",
	RunE:  runAuthLogout,
}

var authAskSecret bool

func init() {
	authLoginCmd.Flags().BoolVar(&authAskSecret, "client-secret", false,
		"prompt for the application's client secret and store it")
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	if authAskSecret {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		cmd.Print("Client secret: ")
		secret := readPassword()
		cmd.Println()
		if secret == "" {
			return fmt.Errorf("%w: empty client secret", domain.ErrInvalidInput)
		}
		if err := settingsService.Set("graph.client_secret", secret); err != nil {
			return fmt.Errorf("failed to save client secret: %w", err)
		}
	}

	account, err := authService.Login(commandContext(cmd), accountID, func(p driving.SignInPrompt) {
		if p.UserCode == "" {
			cmd.Println("Opening your browser to sign in. If it does not open, visit:")
			cmd.Println()
			cmd.Printf("  %s\n", p.VerificationURI)
		} else {
			cmd.Println("To sign in, open the page below and enter the code:")
			cmd.Println()
			cmd.Printf("  %s\n", p.VerificationURI)
			cmd.Printf("  Code: %s\n", p.UserCode)
		}
		cmd.Println()
		cmd.Println("Waiting for sign-in to complete...")
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	name := account.Username
	if name == "" {
		name = "(unknown user)"
	}
	cmd.Printf("Signed in as %s (account %q)\n", name, accountID)
	return nil
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	account, err := authService.Status(commandContext(cmd), accountID)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("Account %q is not signed in. Run 'echo auth login'.\n", accountID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read account: %w", err)
	}

	cmd.Printf("Account: %s\n", accountID)
	if account.Username != "" {
		cmd.Printf("  User: %s\n", account.Username)
	}
	switch {
	case account.Expiry.IsZero():
		cmd.Println("  Access token: no expiry recorded")
	case account.IsExpired():
		cmd.Printf("  Access token: expired %s\n", account.Expiry.Format(time.RFC3339))
	default:
		cmd.Printf("  Access token: valid until %s\n", account.Expiry.Format(time.RFC3339))
	}
	if account.HasRefreshToken() {
		cmd.Println("  Renewal: automatic")
	} else {
		cmd.Println("  Renewal: not possible, sign in again when the token expires")
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errors.New("auth service not configured")
	}

	if err := authService.Logout(commandContext(cmd), accountID); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	cmd.Printf("Signed out of account %q\n", accountID)
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
