package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/watch"
	"github.com/custodia-labs/askdocs/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir...]",
	Short: "Keep the corpus in sync with directories",
	Long: `Load the supported files in the given directories and keep watching
them. Changed files are reloaded and deleted files are removed from the
corpus. Combine with --serve to answer questions over HTTP meanwhile.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

var watchServe bool

func init() {
	watchCmd.Flags().BoolVar(&watchServe, "serve", false, "also run the HTTP API server")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if remote() {
		return fmt.Errorf("watch is %w", errRemoteUnsupported)
	}
	if ingestService == nil || documentService == nil {
		return errors.New("ingest service not configured")
	}
	logger.RaiseTo(logger.LevelInfo)
	ctx := cmd.Context()

	if watchServe {
		go func() {
			if err := runServe(cmd, nil); err != nil {
				cmd.PrintErrf("Server stopped: %v\n", err)
			}
		}()
	}

	events := make(chan watch.Event)
	done := make(chan error, 1)
	go func() {
		done <- watch.New(ingestService, documentService).Run(ctx, args, events)
		close(events)
	}()

	for ev := range events {
		printWatchEvent(cmd, ev)
	}
	return <-done
}

func printWatchEvent(cmd *cobra.Command, ev watch.Event) {
	switch {
	case ev.Err != nil:
		cmd.PrintErrf("Error  %s: %v\n", ev.Path, ev.Err)
	case ev.Op == watch.FileRemoved:
		cmd.Printf("Removed  %s\n", ev.Path)
	case ev.Document != nil:
		cmd.Printf("Loaded   %s  %s (%s)\n", ev.Path, ev.Document.ID, ev.Document.Title)
	}
}
