// Command askdocs answers questions from a corpus of documents.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/askdocs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/askdocs/internal/adapters/driven/fetcher"
	"github.com/custodia-labs/askdocs/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/askdocs/internal/adapters/driving/cli"
	"github.com/custodia-labs/askdocs/internal/core/services"
	"github.com/custodia-labs/askdocs/internal/logger"
	"github.com/custodia-labs/askdocs/internal/normalisers"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetInitializer(initialise)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// initialise wires the services from the config directory.
func initialise(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir, file.WithEnvOverrides(services.SettingKeys()...))
	if err != nil {
		return nil, fmt.Errorf("config store: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	if opts.Verbose || settings.Verbose {
		logger.SetVerbose(true)
	}

	docStore := memory.NewDocumentStore()
	historyService := services.NewHistoryService(memory.NewHistoryStore(settings.History.Limit))
	pageFetcher := fetcher.New(fetcher.Config{
		Timeout: settings.Fetch.Timeout,
		RateLimit: fetcher.RateLimitConfig{
			RequestsPerSecond: settings.Fetch.RatePerSecond,
			BurstSize:         settings.Fetch.Burst,
		},
	})
	ingestService := services.NewIngestService(docStore, normalisers.NewDefaultRegistry(), pageFetcher)

	if len(settings.Documents.Paths) > 0 {
		logger.Section("Preloading documents")
		_, errs := ingestService.IngestPaths(ctx, settings.Documents.Paths)
		for _, err := range errs {
			logger.Warn("%v", err)
		}
	}

	return &cli.Services{
		Query:     services.NewQueryService(docStore, historyService),
		Documents: services.NewDocumentService(docStore),
		Ingest:    ingestService,
		History:   historyService,
		Settings:  settingsService,
	}, nil
}
