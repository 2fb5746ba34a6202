// Package commands implements the guide-extractor CLI.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/adventureatlas/guide-extractor/cmd/guide-extractor/ui"
	"github.com/adventureatlas/guide-extractor/internal/config"
	"github.com/adventureatlas/guide-extractor/internal/observability"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "guide-extractor",
	Short: "Convert a travel guide into geographically organized JSON datasets",
	Long: `guide-extractor parses destination listings from a travel guide (PDF or
plain text), validates their coordinates, classifies each into a country and
region, enriches them with bilingual attraction descriptions through a local
Ollama model, and assembles the results into latitude-banded chapter files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		ui.Init(noColor, verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads configuration plus the flags that override it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Observability.LogLevel = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:   cfg.Observability.LogLevel,
		Format:  cfg.Observability.LogFormat,
		Service: "guide-extractor",
	})
}
