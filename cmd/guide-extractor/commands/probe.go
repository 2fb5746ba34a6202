package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/adventureatlas/guide-extractor/cmd/guide-extractor/ui"
	"github.com/adventureatlas/guide-extractor/internal/enrich"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check connectivity to the configured Ollama service",
	RunE:  runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	client := enrich.NewOllamaClient(cfg.Ollama.Host, cfg.Ollama.Model,
		enrich.DefaultOptions(), cfg.Ollama.RequestTimeout, logger)

	spin := ui.NewSpinner("Probing " + cfg.Ollama.Host + "...")
	spin.Start()
	err = client.Probe(ctx)
	spin.Stop()

	if err != nil {
		ui.Error("Ollama unreachable at %s: %v", cfg.Ollama.Host, err)
		ui.Info("Extraction will fall back to template descriptions")
		return err
	}

	ui.Success("Ollama reachable at %s (model %s)", cfg.Ollama.Host, cfg.Ollama.Model)
	return nil
}
