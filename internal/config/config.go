// Package config provides unified configuration loading for the extractor.
// Supports YAML files, environment variables, and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/adventureatlas/guide-extractor/internal/domain"
	"github.com/adventureatlas/guide-extractor/internal/enrich"
)

// Config holds all configuration for the extractor.
type Config struct {
	Guide         GuideConfig         `yaml:"guide"`
	Ollama        OllamaConfig        `yaml:"ollama"`
	Output        OutputConfig        `yaml:"output"`
	RunLog        RunLogConfig        `yaml:"runlog"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// GuideConfig carries the source identity stamped into output metadata.
type GuideConfig struct {
	Title  string `yaml:"title"`
	Source string `yaml:"source"`
}

// OllamaConfig holds enrichment service settings.
type OllamaConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Host           string        `yaml:"host"`
	Model          string        `yaml:"model"`
	Temperature    float64       `yaml:"temperature"`
	TopP           float64       `yaml:"top_p"`
	MaxTokens      int           `yaml:"max_tokens"`
	BatchSize      int           `yaml:"batch_size"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// OutputConfig holds output artifact settings.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	PrettyJSON bool   `yaml:"pretty_json"`
}

// RunLogConfig holds the run-history store settings.
type RunLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. An empty path loads defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, domain.ConfigError("read config file", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, domain.ConfigError("parse config file", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Guide: GuideConfig{
			Title:  "Find Your Next Adventure",
			Source: "Find Your Next Adventure Travel Guide",
		},
		Ollama: OllamaConfig{
			Enabled:        true,
			Host:           "http://localhost:11434",
			Model:          "phi4-mini",
			Temperature:    0.7,
			TopP:           0.9,
			MaxTokens:      2048,
			BatchSize:      enrich.DefaultBatchSize,
			RequestTimeout: 2 * time.Minute,
		},
		Output: OutputConfig{
			Dir:        "./output",
			PrettyJSON: true,
		},
		RunLog: RunLogConfig{
			Enabled: true,
			Path:    "guide-extractor-runs.db",
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// applyEnvOverrides lets environment variables win over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.Ollama.Host = v
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.Ollama.Model = v
	}
	if v := os.Getenv("OLLAMA_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Ollama.BatchSize = n
		}
	}
	if v := os.Getenv("GUIDE_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("GUIDE_RUNLOG_PATH"); v != "" {
		cfg.RunLog.Path = v
	}
	if v := os.Getenv("GUIDE_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("GUIDE_LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Ollama.BatchSize <= 0 {
		return domain.ConfigError(fmt.Sprintf("batch size must be positive, got %d", c.Ollama.BatchSize), nil)
	}
	if c.Ollama.Temperature < 0 || c.Ollama.Temperature > 2 {
		return domain.ConfigError(fmt.Sprintf("temperature out of range: %v", c.Ollama.Temperature), nil)
	}
	if c.Output.Dir == "" {
		return domain.ConfigError("output dir must not be empty", nil)
	}
	if c.RunLog.Enabled && c.RunLog.Path == "" {
		return domain.ConfigError("runlog path must not be empty when enabled", nil)
	}
	return nil
}
