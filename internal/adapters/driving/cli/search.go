package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
	searchRaw   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search OneDrive and SharePoint files",
	Long: `Searches your OneDrive and every drive of every SharePoint site, then ranks
the results by semantic similarity to the query when an embedding provider
is configured. Falls back to your recent files when nothing matches.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results (0 for all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchRaw, "raw", false, "skip ranking and print files in discovery order")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if searchService == nil {
		return errors.New("search service not configured")
	}

	ctx := commandContext(cmd)
	session, err := openSession(ctx)
	if err != nil {
		return err
	}

	search := searchService.Search
	if searchRaw {
		search = searchService.Collect
	}
	files, err := search(ctx, session, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if searchLimit > 0 && len(files) > searchLimit {
		files = files[:searchLimit]
	}

	if searchJSON {
		return outputJSON(cmd, files)
	}
	outputFiles(cmd, files)
	return nil
}

// openSession opens a session for the selected account.
func openSession(ctx context.Context) (*domain.Session, error) {
	if authService == nil {
		return nil, errors.New("auth service not configured")
	}
	session, err := authService.OpenSession(ctx, accountID)
	if errors.Is(err, domain.ErrAuthRequired) {
		return nil, fmt.Errorf("%w: run 'echo auth login' first", err)
	}
	return session, err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputFiles(cmd *cobra.Command, files []domain.File) {
	if len(files) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range files {
		// Format: [N] Name (Score)
		if files[i].Score != nil {
			cmd.Printf("  [%d] %s (%.2f)\n", i+1, files[i].Name, *files[i].Score)
		} else {
			cmd.Printf("  [%d] %s\n", i+1, files[i].Name)
		}
		origin := "OneDrive"
		if !files[i].IsPersonal() {
			origin = "Site " + files[i].Origin
		}
		cmd.Printf("      Source: %s\n", origin)
		if files[i].WebURL != "" {
			cmd.Printf("      %s\n", files[i].WebURL)
		}
		cmd.Println()
	}
}
