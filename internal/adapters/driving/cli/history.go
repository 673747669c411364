package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/services"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously answered questions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List answered questions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the answer history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyLimit int

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show at most this many entries (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

// historyView is the structured form of the history listing.
type historyView struct {
	Entries []domain.HistoryEntry `json:"entries" yaml:"entries"`
	Stats   domain.HistoryStats   `json:"stats" yaml:"stats"`
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	ctx := cmd.Context()

	entries, err := historyService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	stats, err := historyService.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute history stats: %w", err)
	}
	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[:historyLimit]
	}

	if ok, err := render(cmd, historyView{Entries: entries, Stats: stats}); ok {
		return err
	}
	if len(entries) == 0 {
		cmd.Println("No questions answered yet.")
		return nil
	}

	for _, e := range entries {
		cmd.Printf("[%s] %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Question)
		cmd.Printf("  %s\n", services.Preview(e))
		cmd.Printf("  Confidence: %d%%  Sources: %d\n\n", e.Answer.Confidence, len(e.Answer.Sources))
	}
	cmd.Printf("Total answers: %d  Average confidence: %d%%\n", stats.Total, stats.AverageConfidence)
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	if err := historyService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	cmd.Println("History cleared.")
	return nil
}
