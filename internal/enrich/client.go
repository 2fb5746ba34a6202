// Package enrich fills bilingual attraction text into destinations by
// batching requests to a local Ollama instance, with deterministic fallback
// text when the service is unreachable or a response cannot be matched back
// to its destination.
package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/adventureatlas/guide-extractor/internal/domain"
)

const (
	defaultHost  = "http://localhost:11434"
	defaultModel = "phi4-mini"
)

// Options configure the Ollama generation call.
type Options struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

// DefaultOptions match the settings used to produce the published guide data.
func DefaultOptions() Options {
	return Options{
		Temperature: 0.7,
		TopP:        0.9,
		NumPredict:  2048,
	}
}

// OllamaClient talks to the Ollama generate API.
type OllamaClient struct {
	host       string
	model      string
	options    Options
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewOllamaClient creates a client for the given host and model; empty values
// fall back to the local defaults.
func NewOllamaClient(host, model string, opts Options, timeout time.Duration, logger zerolog.Logger) *OllamaClient {
	if host == "" {
		host = defaultHost
	}
	if model == "" {
		model = defaultModel
	}
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	return &OllamaClient{
		host:       host,
		model:      model,
		options:    opts,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With().Str("component", "ollama").Logger(),
	}
}

// generateRequest is the Ollama /api/generate request body.
type generateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options"`
}

// generateResponse is the subset of the Ollama response we consume.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends one prompt and returns the full response text.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  false,
		Options: c.options,
	})
	if err != nil {
		return "", domain.EnrichmentError("marshal generate request", err)
	}

	resp, err := c.retryWithBackoff(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/generate", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return c.httpClient.Do(req)
	})
	if err != nil {
		return "", domain.EnrichmentError("generate request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", domain.EnrichmentError(fmt.Sprintf("generate returned status %d: %s", resp.StatusCode, b), nil)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.EnrichmentError("decode generate response", err)
	}
	return out.Response, nil
}

// Probe confirms the service is reachable before committing to batch
// processing. It hits the model listing endpoint, which is cheap and does not
// load a model.
func (c *OllamaClient) Probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return domain.EnrichmentError("build probe request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.EnrichmentError("service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.EnrichmentError(fmt.Sprintf("probe returned status %d", resp.StatusCode), nil)
	}

	c.logger.Debug().Str("host", c.host).Str("model", c.model).Msg("connectivity probe succeeded")
	return nil
}
