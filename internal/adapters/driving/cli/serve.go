package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/api"
	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the askdocs HTTP API.

Routes:
  POST   /api/upload                 upload a file or add a URL
  GET    /api/upload/documents       list documents
  DELETE /api/upload/documents/:id   delete a document
  POST   /api/query                  ask a question
  GET    /api/history                answered questions
  GET    /health                     health check
  GET    /metrics                    Prometheus metrics

Host and port default to the server.host and server.port settings.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// Serve flags.
var (
	serveHost string
	servePort int
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (overrides server.host)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if remote() {
		return fmt.Errorf("serve is %w", errRemoteUnsupported)
	}
	logger.RaiseTo(logger.LevelInfo)

	cfg, err := serverConfig()
	if err != nil {
		return err
	}

	server, err := api.NewServer(&api.Services{
		Query:     queryService,
		Documents: documentService,
		Ingest:    ingestService,
		History:   historyService,
	}, cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	cmd.Printf("askdocs API listening on http://%s\n", server.Addr())
	return server.Run(cmd.Context())
}

// serverConfig resolves the listen address from settings and flags.
func serverConfig() (*api.Config, error) {
	defaults := domain.DefaultAppSettings()
	cfg := &api.Config{Host: defaults.Server.Host, Port: defaults.Server.Port}
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("failed to get settings: %w", err)
		}
		cfg.Host = settings.Server.Host
		cfg.Port = settings.Server.Port
	}
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort < 0 || servePort > 65535 {
		return nil, errors.New("--port must be between 0 and 65535")
	}
	if servePort > 0 {
		cfg.Port = servePort
	}
	return cfg, nil
}
