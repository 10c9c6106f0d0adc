package external

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

// LLMClientParams holds parameters for creating the text generation client
type LLMClientParams struct {
	BaseURL         string
	Model           string
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerOpen     time.Duration
	Logger          ports.Logger
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// OllamaClient implements TextGenerator against an Ollama /api/generate
// endpoint. Consecutive failures open a circuit breaker so warm batches stop
// queueing behind a dead model server.
type OllamaClient struct {
	baseURL string
	model   string
	timeout time.Duration
	client  HTTPClient
	breaker *gobreaker.CircuitBreaker
	logger  ports.Logger
}

func NewOllamaClient(params LLMClientParams) *OllamaClient {
	failures := params.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	logger := params.Logger

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "llm",
		MaxRequests: 1,
		Timeout:     params.BreakerOpen,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.IsValidationError(err) || stderrors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				ports.F("breaker", name), ports.F("from", from.String()), ports.F("to", to.String()))
		},
	})

	return &OllamaClient{
		baseURL: strings.TrimRight(params.BaseURL, "/"),
		model:   params.Model,
		timeout: params.Timeout,
		client:  &http.Client{},
		breaker: breaker,
		logger:  logger,
	}
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.NewValidationError("prompt cannot be empty")
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.generate(ctx, prompt)
	})
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", errors.NewExternalAPIError("language model unavailable", err)
	}
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (c *OllamaClient) generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	var resp generateResponse
	err := doJSON(ctx, c.client, c.logger, "language model", http.MethodPost, c.baseURL+"/api/generate",
		generateRequest{Model: c.model, Prompt: prompt, Stream: false}, &resp)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Generated completion",
		ports.F("model", c.model), ports.F("duration", time.Since(start)), ports.F("chars", len(resp.Response)))
	return resp.Response, nil
}

// Ping checks that the model server answers
func (c *OllamaClient) Ping(ctx context.Context) error {
	if err := doJSON(ctx, c.client, c.logger, "language model", http.MethodGet, c.baseURL+"/api/tags", nil, nil); err != nil {
		return fmt.Errorf("ping language model: %w", err)
	}
	return nil
}

// BreakerState reports the circuit breaker state for health output
func (c *OllamaClient) BreakerState() string {
	return c.breaker.State().String()
}
