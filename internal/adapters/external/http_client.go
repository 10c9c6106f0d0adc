package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// doJSON sends body as JSON (GET when body is nil) and decodes a 200 response
// into out. service names the collaborator in error messages.
func doJSON(ctx context.Context, client HTTPClient, logger ports.Logger, service, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", service, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", service, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return errors.NewTimeoutError(fmt.Sprintf("%s request did not complete", service), err)
		}
		return errors.NewExternalAPIError(fmt.Sprintf("failed to call %s", service), err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("Failed to close response body", ports.F("service", service), ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return errors.NewExternalAPIError(fmt.Sprintf("%s returned status %d", service, resp.StatusCode), nil)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewExternalAPIError(fmt.Sprintf("failed to decode %s response", service), err)
	}
	return nil
}
