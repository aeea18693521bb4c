package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driving/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server exposing the assistant and search.

Endpoints:
  GET  /healthz
  GET  /api/search?q=<query>&limit=<n>
  POST /api/chat     {"message": "...", "top_k": 5, "email": false}
  GET  /api/account

Every request runs as the cached account, or the one named by ?account=.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	if searchService == nil || assistantService == nil || authService == nil {
		return errors.New("services not configured")
	}

	server, err := api.NewServer(&api.Ports{
		Search:    searchService,
		Assistant: assistantService,
		Auth:      authService,
		Notify:    notifyService,
		AccountID: accountID,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Echo API listening on %s\n", addr)
	return server.Run(ctx, addr)
}
