package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaClient_Generate(t *testing.T) {
	var gotReq generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(generateResponse{Response: "Oslo: English: Fjords | French: Fjords", Done: true})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "phi4-mini", DefaultOptions(), 10*time.Second, zerolog.Nop())

	text, err := client.Generate(context.Background(), "describe Oslo")
	require.NoError(t, err)
	assert.Equal(t, "Oslo: English: Fjords | French: Fjords", text)

	assert.Equal(t, "phi4-mini", gotReq.Model)
	assert.Equal(t, "describe Oslo", gotReq.Prompt)
	assert.False(t, gotReq.Stream)
	assert.Equal(t, 0.7, gotReq.Options.Temperature)
}

func TestOllamaClient_Generate_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "ok", Done: true})
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "", DefaultOptions(), 10*time.Second, zerolog.Nop())

	text, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOllamaClient_Generate_NonRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL, "", DefaultOptions(), 10*time.Second, zerolog.Nop())

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), calls.Load(), "client errors must not be retried")
}

func TestOllamaClient_Probe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	client := NewOllamaClient(server.URL, "", DefaultOptions(), 10*time.Second, zerolog.Nop())
	assert.NoError(t, client.Probe(context.Background()))

	server.Close()
	assert.Error(t, client.Probe(context.Background()))
}

func TestShouldRetry(t *testing.T) {
	assert.True(t, shouldRetry(http.StatusTooManyRequests))
	assert.True(t, shouldRetry(http.StatusInternalServerError))
	assert.True(t, shouldRetry(http.StatusGatewayTimeout))
	assert.False(t, shouldRetry(http.StatusOK))
	assert.False(t, shouldRetry(http.StatusBadRequest))
	assert.False(t, shouldRetry(http.StatusNotFound))
}

func TestCalculateBackoff(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, 1*time.Second, calculateBackoff(0, cfg))
	assert.Equal(t, 2*time.Second, calculateBackoff(1, cfg))
	assert.Equal(t, 4*time.Second, calculateBackoff(2, cfg))
	assert.Equal(t, 30*time.Second, calculateBackoff(10, cfg))
}
