// Package cli provides the askdocs command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/adapters/driven/client"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// configDirEnv names the config directory when --config-dir is not given.
const configDirEnv = "ASKDOCS_CONFIG_DIR"

// Services holds the application services commands run against.
type Services struct {
	Query     driving.QueryService
	Documents driving.DocumentService
	Ingest    driving.IngestService
	History   driving.HistoryService
	Settings  driving.SettingsService
}

// Options are the global flags passed to the initializer.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// Initializer builds the services once global flags are parsed.
type Initializer func(ctx context.Context, opts Options) (*Services, error)

var (
	queryService    driving.QueryService
	documentService driving.DocumentService
	ingestService   driving.IngestService
	historyService  driving.HistoryService
	settingsService driving.SettingsService

	initializer Initializer
)

// Global flags.
var (
	verbose   bool
	configDir string
	serverURL string
	output    string
)

var rootCmd = &cobra.Command{
	Use:   "askdocs",
	Short: "Ask questions about your documents",
	Long: `askdocs answers questions from a corpus of Markdown, HTML and PDF
documents and web pages. Answers are extracted from the documents and
attributed to their sources, with a confidence estimate.

Documents live in memory for the lifetime of the process. Use 'askdocs serve'
or 'askdocs tui' for a long-running session, or point commands at a running
server with --server.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.askdocs)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "base URL of a running askdocs server")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", formatText, "output format: text, json or yaml")
}

// SetServices configures the services used by commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	queryService = s.Query
	documentService = s.Documents
	ingestService = s.Ingest
	historyService = s.History
	settingsService = s.Settings
}

// SetInitializer registers the function that builds services before a
// command runs. Services already set with SetServices are kept.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// cobra prints to stderr unless an output is set
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func initServices(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}

	if initializer != nil && queryService == nil {
		dir := configDir
		if dir == "" {
			dir = os.Getenv(configDirEnv)
		}
		s, err := initializer(cmd.Context(), Options{ConfigDir: dir, Verbose: verbose})
		if err != nil {
			return fmt.Errorf("failed to initialise: %w", err)
		}
		SetServices(s)
	}

	if serverURL != "" {
		c, err := client.New(serverURL, nil)
		if err != nil {
			return fmt.Errorf("invalid --server: %w", err)
		}
		logger.Debug("Using remote server %s", serverURL)
		queryService = c
		documentService = c
	}
	return nil
}

// remote reports whether commands run against a remote server.
func remote() bool {
	return serverURL != ""
}

var errRemoteUnsupported = errors.New("not available with --server")
