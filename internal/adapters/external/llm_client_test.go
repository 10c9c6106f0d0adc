package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"synergyai.app/internal/mocks"
	"synergyai.app/pkg/errors"
)

func newTestOllamaClient(t *testing.T, handler http.HandlerFunc, failures uint32) *OllamaClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOllamaClient(LLMClientParams{
		BaseURL:         server.URL + "/",
		Model:           "synergyai-specialist",
		Timeout:         time.Second,
		BreakerFailures: failures,
		BreakerOpen:     time.Minute,
		Logger:          mocks.AllowLogging(mocks.NewLogger(t)),
	})
}

func TestOllamaClient_Generate(t *testing.T) {
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "synergyai-specialist", req.Model)
		assert.Equal(t, "Summarize", req.Prompt)
		assert.False(t, req.Stream)

		_, _ = w.Write([]byte(`{"response": "Pipeline is healthy.", "done": true}`))
	}, 3)

	text, err := client.Generate(context.Background(), "Summarize")

	require.NoError(t, err)
	assert.Equal(t, "Pipeline is healthy.", text)
}

func TestOllamaClient_EmptyPrompt(t *testing.T) {
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}, 3)

	_, err := client.Generate(context.Background(), "  ")
	assert.True(t, errors.IsValidationError(err))
}

func TestOllamaClient_BreakerOpensAfterFailures(t *testing.T) {
	var hits atomic.Int32
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, 2)

	for i := 0; i < 2; i++ {
		_, err := client.Generate(context.Background(), "prompt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	}
	assert.Equal(t, "open", client.BreakerState())

	_, err := client.Generate(context.Background(), "prompt")

	assert.True(t, errors.IsExternalAPIError(err))
	assert.Contains(t, err.Error(), "language model unavailable")
	assert.Equal(t, int32(2), hits.Load())
}

func TestOllamaClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 3)
	defer close(release)
	client.timeout = 50 * time.Millisecond

	_, err := client.Generate(context.Background(), "prompt")

	assert.Equal(t, errors.ErrorTypeTimeout, errors.TypeOf(err))
}

func TestOllamaClient_Ping(t *testing.T) {
	client := newTestOllamaClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models": []}`))
	}, 3)

	assert.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "closed", client.BreakerState())
}
