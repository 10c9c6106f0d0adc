package external

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

// RetrievalClientParams holds parameters for creating the retrieval client
type RetrievalClientParams struct {
	BaseURL string
	Timeout time.Duration
	Logger  ports.Logger
}

type searchRequest struct {
	Query          string   `json:"query"`
	K              int      `json:"k"`
	AllowedSources []string `json:"allowed_sources,omitempty"`
}

type searchResponse struct {
	Results []ports.Chunk `json:"results"`
}

// RetrievalClient implements Searcher against the retrieval service
type RetrievalClient struct {
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

func NewRetrievalClient(params RetrievalClientParams) *RetrievalClient {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RetrievalClient{
		baseURL: strings.TrimRight(params.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  params.Logger,
	}
}

// Search returns up to k chunks for query. A non-empty allowedSources limits
// results to chunks from those documents.
func (c *RetrievalClient) Search(ctx context.Context, query string, k int, allowedSources []string) ([]ports.Chunk, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.NewValidationError("search query cannot be empty")
	}
	if k <= 0 {
		return nil, errors.NewValidationError("k must be positive")
	}

	var resp searchResponse
	err := doJSON(ctx, c.client, c.logger, "retrieval service", http.MethodPost, c.baseURL+"/search",
		searchRequest{Query: query, K: k, AllowedSources: allowedSources}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Results) > k {
		resp.Results = resp.Results[:k]
	}
	if resp.Results == nil {
		resp.Results = []ports.Chunk{}
	}
	return resp.Results, nil
}

func (c *RetrievalClient) Ping(ctx context.Context) error {
	if err := doJSON(ctx, c.client, c.logger, "retrieval service", http.MethodGet, c.baseURL+"/health", nil, nil); err != nil {
		return fmt.Errorf("ping retrieval service: %w", err)
	}
	return nil
}
