package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/adventureatlas/guide-extractor/cmd/guide-extractor/ui"
	"github.com/adventureatlas/guide-extractor/internal/runlog"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent extraction runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.RunLog.Enabled {
		ui.Warning("Run history is disabled in configuration")
		return nil
	}

	store, err := runlog.Open(cmd.Context(), cfg.RunLog.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		ui.Info("No runs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.StartedAt.Format("2006-01-02 15:04"),
			r.Source,
			fmt.Sprintf("%d", r.Parse.Successful),
			fmt.Sprintf("%d", r.Parse.Failed),
			fmt.Sprintf("%d", r.Enrichment.Fulfilled),
			fmt.Sprintf("%d", r.Enrichment.FellBack),
			r.Duration().Round(time.Second).String(),
		})
	}

	ui.Section("Recent Runs")
	ui.Table([]string{"Started", "Source", "Parsed", "Failed", "Enriched", "Fallback", "Duration"}, rows)
	return nil
}
