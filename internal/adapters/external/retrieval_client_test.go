package external

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"synergyai.app/internal/mocks"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

func newTestRetrievalClient(t *testing.T, handler http.HandlerFunc) *RetrievalClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewRetrievalClient(RetrievalClientParams{
		BaseURL: server.URL,
		Logger:  mocks.AllowLogging(mocks.NewLogger(t)),
	})
}

func TestRetrievalClient_Search(t *testing.T) {
	client := newTestRetrievalClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "risks", req.Query)
		assert.Equal(t, 2, req.K)
		assert.Equal(t, []string{"p1/report.pdf"}, req.AllowedSources)

		_, _ = w.Write([]byte(`{"results": [
			{"content": "a", "source": "p1/report.pdf", "doc_id": "D1"},
			{"content": "b", "source": "p1/report.pdf"},
			{"content": "c", "source": "p1/report.pdf"}
		]}`))
	})

	chunks, err := client.Search(context.Background(), "risks", 2, []string{"p1/report.pdf"})

	require.NoError(t, err)
	assert.Equal(t, []ports.Chunk{
		{Content: "a", Source: "p1/report.pdf", DocID: "D1"},
		{Content: "b", Source: "p1/report.pdf"},
	}, chunks)
}

func TestRetrievalClient_EmptyResults(t *testing.T) {
	client := newTestRetrievalClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	chunks, err := client.Search(context.Background(), "risks", 5, nil)

	require.NoError(t, err)
	assert.NotNil(t, chunks)
	assert.Empty(t, chunks)
}

func TestRetrievalClient_Errors(t *testing.T) {
	client := newTestRetrievalClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.Search(context.Background(), "", 5, nil)
	assert.True(t, errors.IsValidationError(err))

	_, err = client.Search(context.Background(), "q", 0, nil)
	assert.True(t, errors.IsValidationError(err))

	_, err = client.Search(context.Background(), "q", 5, nil)
	assert.True(t, errors.IsExternalAPIError(err))

	err = client.Ping(context.Background())
	assert.True(t, errors.IsExternalAPIError(err))
	assert.Contains(t, err.Error(), "status 503")
}
