package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

var (
	askTop          int
	askJSON         bool
	askSkipSemantic bool
	askEmail        bool
	askTo           string
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Ask the document assistant",
	Long: `Classifies the message as a document request or a general question.

Document requests are split into a year and core words, tried as several
narrower queries until one finds files, then ranked by how many words and
whether the year appear in each file's content. General questions are
answered by the configured language model.

Examples:
  echo ask "get me the budget report 2023 file"
  echo ask "send me the leave policy document" --email
  echo ask "what can you do?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTop, "top", "n", 0, "maximum number of files (0 uses search.top_k)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the reply as JSON")
	askCmd.Flags().BoolVar(&askSkipSemantic, "no-semantic", false, "keep keyword order, skip embedding ranking")
	askCmd.Flags().BoolVar(&askEmail, "email", false, "mail links to the found files")
	askCmd.Flags().StringVar(&askTo, "to", "", "mail recipient (defaults to the signed-in user)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")

	if assistantService == nil {
		return errors.New("assistant service not configured")
	}

	ctx := commandContext(cmd)
	session, err := openSession(ctx)
	if err != nil && !errors.Is(err, domain.ErrAuthRequired) {
		return err
	}

	reply, err := assistantService.Handle(ctx, session, message, domain.SearchOptions{
		TopK:         askTop,
		SkipSemantic: askSkipSemantic,
	})
	if err != nil {
		return err
	}

	if askEmail && len(reply.Files) > 0 {
		if notifyService == nil {
			return errors.New("notify service not configured")
		}
		to, err := notifyService.SendFiles(ctx, session, askTo, reply.Files)
		if err != nil {
			return fmt.Errorf("email failed: %w", err)
		}
		if !askJSON {
			cmd.Printf("Sent %d file links to %s\n\n", len(reply.Files), to)
		}
	}

	if askJSON {
		return outputJSON(cmd, reply)
	}

	if reply.Intent.Kind != domain.IntentFileSearch {
		cmd.Println(reply.Answer)
		return nil
	}
	switch {
	case reply.Query == "" && len(reply.Files) > 0:
		cmd.Println("No matches, showing recent files")
		cmd.Println()
	case reply.Query != "" && reply.Plan != nil && reply.Query != reply.Plan.CoreIntent:
		cmd.Printf("No match for %q, showing results for %q\n\n", reply.Plan.CoreIntent, reply.Query)
	}
	outputFiles(cmd, reply.Files)
	return nil
}
