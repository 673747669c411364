package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/askdocs/internal/core/domain"
)

// Ask flags.
var (
	askFiles []string
	askURLs  []string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the loaded documents",
	Long: `Answer a question from the loaded documents.

Documents can be loaded for this question with --file and --url, from the
documents.paths setting, or from a running server with --server. Without a
question argument the question is read from standard input.

Examples:
  askdocs ask --file README.md "how do I install it?"
  askdocs ask --url https://go.dev/doc/ "what is a module?" -o json
  echo "what changed?" | askdocs ask --file CHANGELOG.md`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringSliceVarP(&askFiles, "file", "f", nil, "file or directory to load before asking (repeatable)")
	askCmd.Flags().StringSliceVarP(&askURLs, "url", "u", nil, "web page to load before asking (repeatable)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}
	ctx := cmd.Context()

	if len(askFiles) > 0 || len(askURLs) > 0 {
		if remote() {
			return fmt.Errorf("--file and --url are %w", errRemoteUnsupported)
		}
		if err := loadForAsk(cmd); err != nil {
			return err
		}
	}

	question := strings.Join(args, " ")
	if question == "" {
		q, err := readQuestion(cmd)
		if err != nil {
			return err
		}
		question = q
	}

	answer, err := queryService.Ask(ctx, question)
	switch {
	case errors.Is(err, domain.ErrEmptyQuestion):
		return errors.New("question is required")
	case errors.Is(err, domain.ErrNoDocuments):
		return errors.New("no documents loaded: use --file, --url or the documents.paths setting")
	case err != nil:
		return fmt.Errorf("failed to answer: %w", err)
	}

	if ok, err := render(cmd, answer); ok {
		return err
	}
	printAnswer(cmd, answer)
	return nil
}

func loadForAsk(cmd *cobra.Command) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	ctx := cmd.Context()

	if len(askFiles) > 0 {
		docs, errs := ingestService.IngestPaths(ctx, askFiles)
		for _, err := range errs {
			cmd.PrintErrf("Warning: %v\n", err)
		}
		if len(docs) == 0 && len(errs) > 0 {
			return errors.New("no documents could be loaded")
		}
	}
	for _, u := range askURLs {
		if _, err := ingestService.IngestURL(ctx, u); err != nil {
			return fmt.Errorf("failed to load %s: %w", u, err)
		}
	}
	return nil
}

// readQuestion reads one line from stdin, prompting when stdin is a terminal.
func readQuestion(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		cmd.Print("Question: ")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read question: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func printAnswer(cmd *cobra.Command, answer *domain.AnswerResult) {
	cmd.Println(answer.Text)
	cmd.Println()
	cmd.Printf("Confidence: %d%%\n", answer.Confidence)
	if len(answer.Sources) == 0 {
		return
	}
	cmd.Println("Sources:")
	for i, src := range answer.Sources {
		cmd.Printf("  %d. %s (%s, relevance %d)\n", i+1, src.Title, src.FileType, src.Relevance)
	}
}
