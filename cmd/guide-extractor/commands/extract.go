package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/adventureatlas/guide-extractor/cmd/guide-extractor/ui"
	"github.com/adventureatlas/guide-extractor/internal/chapters"
	"github.com/adventureatlas/guide-extractor/internal/config"
	"github.com/adventureatlas/guide-extractor/internal/domain"
	"github.com/adventureatlas/guide-extractor/internal/enrich"
	"github.com/adventureatlas/guide-extractor/internal/geo"
	"github.com/adventureatlas/guide-extractor/internal/output"
	"github.com/adventureatlas/guide-extractor/internal/parse"
	"github.com/adventureatlas/guide-extractor/internal/pdfio"
	"github.com/adventureatlas/guide-extractor/internal/pipeline"
	"github.com/adventureatlas/guide-extractor/internal/runlog"
)

var (
	extractNoEnrich bool
	extractTimeout  time.Duration
)

var extractCmd = &cobra.Command{
	Use:   "extract <input> [output-dir]",
	Short: "Extract destinations from a guide and write chapter JSON files",
	Long: `Extract parses destination lines from the given PDF or text file, enriches
them through the configured Ollama model, and writes per-chapter JSON files, a
combined guide document, and a debug report for any lines that failed.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractNoEnrich, "no-enrich", false, "skip the model and use template descriptions")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 30*time.Minute, "overall run timeout")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), extractTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	input := args[0]
	outDir := cfg.Output.Dir
	if len(args) > 1 {
		outDir = args[1]
	}

	ui.Section("Guide Extraction")
	ui.Info("Input:  %s", input)
	ui.Info("Output: %s", outDir)
	ui.Newline()

	source := pdfio.NewSource(input, logger)
	parser := parse.NewParser(geo.NewClassifier())
	enricher := buildEnricher(cfg, logger)

	meta := chapters.Metadata{
		Source:     cfg.Guide.Source,
		GuideTitle: cfg.Guide.Title,
	}

	pipe := pipeline.NewService(source, parser, enricher, meta, logger)

	events := make(chan pipeline.StreamEvent, 64)
	spin := ui.NewSpinner("Reading and parsing destinations...")
	spin.Start()

	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		for ev := range events {
			switch ev.Type {
			case pipeline.EventStateChange:
				// Parsing is over once enrichment starts; hand the
				// terminal to the batch progress bar.
				if ev.Payload == string(pipeline.StateEnriching) {
					spin.Stop()
				}
			case pipeline.EventParseFailure:
				if failure, ok := ev.Payload.(*domain.ParseFailure); ok {
					ui.Verbose("skipped: %s", failure.Error())
				}
			}
		}
	}()

	result, err := pipe.Run(ctx, filepath.Base(input), events)
	close(events)
	<-watcherDone
	spin.Stop()
	if err != nil {
		ui.Error("Extraction failed: %v", err)
		return err
	}

	writer := output.NewWriter(outDir, cfg.Output.PrettyJSON, logger)
	chapterPaths, err := writer.WriteChapters(result.Chapters)
	if err != nil {
		return err
	}
	combinedPath, err := writer.WriteCombined(result.Chapters, meta)
	if err != nil {
		return err
	}
	debugPath, err := writer.WriteDebugReport(result.Stats, result.Failures)
	if err != nil {
		return err
	}

	recordRun(ctx, cfg, logger, result.Stats)
	printSummary(result, chapterPaths, combinedPath, debugPath)
	return nil
}

// buildEnricher assembles the enrichment service, or nil when enrichment is
// disabled so the pipeline falls straight back to template text.
func buildEnricher(cfg *config.Config, logger zerolog.Logger) domain.Enricher {
	if extractNoEnrich || !cfg.Ollama.Enabled {
		return nil
	}

	client := enrich.NewOllamaClient(
		cfg.Ollama.Host,
		cfg.Ollama.Model,
		enrich.Options{
			Temperature: cfg.Ollama.Temperature,
			TopP:        cfg.Ollama.TopP,
			NumPredict:  cfg.Ollama.MaxTokens,
		},
		cfg.Ollama.RequestTimeout,
		logger,
	)

	svc := enrich.NewService(client, cfg.Ollama.BatchSize, logger)

	var bar *ui.ProgressBar
	svc.OnBatchDone = func(done, total int) {
		if bar == nil {
			bar = ui.NewProgressBar(int64(total), "Enriching destinations")
		}
		bar.Set(int64(done))
		if done >= total {
			bar.Finish()
		}
	}
	return svc
}

// recordRun appends the run to the history store. Failures here only warn;
// the artifacts are already on disk.
func recordRun(ctx context.Context, cfg *config.Config, logger zerolog.Logger, stats domain.RunStats) {
	if !cfg.RunLog.Enabled {
		return
	}

	store, err := runlog.Open(ctx, cfg.RunLog.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("run history unavailable")
		return
	}
	defer store.Close()

	if err := store.Record(ctx, stats); err != nil {
		logger.Warn().Err(err).Msg("failed to record run")
	}
}

func printSummary(result *pipeline.Result, chapterPaths []string, combinedPath, debugPath string) {
	stats := result.Stats

	ui.Newline()
	ui.Section("Extraction Summary")
	rows := [][]string{
		{"Lines processed", fmt.Sprintf("%d", stats.Parse.Processed)},
		{"Destinations", fmt.Sprintf("%d", stats.Parse.Successful)},
		{"Parse failures", fmt.Sprintf("%d", stats.Parse.Failed)},
		{"Unknown countries", fmt.Sprintf("%d", stats.Parse.UnknownCountries)},
		{"Success rate", fmt.Sprintf("%.1f%%", stats.Parse.SuccessRate())},
		{"Enriched by model", fmt.Sprintf("%d", stats.Enrichment.Fulfilled)},
		{"Template fallbacks", fmt.Sprintf("%d", stats.Enrichment.FellBack)},
		{"Chapter files", fmt.Sprintf("%d", len(chapterPaths))},
		{"Duration", stats.Duration().Round(time.Millisecond).String()},
	}
	ui.Table([]string{"Metric", "Value"}, rows)

	ui.Newline()
	ui.Success("Combined guide: %s", combinedPath)
	if debugPath != "" {
		ui.Warning("Some lines failed to parse, see %s", debugPath)
	}
	if stats.Enrichment.BatchFailures > 0 {
		ui.Warning("%d enrichment batches fell back to templates", stats.Enrichment.BatchFailures)
	}
}
