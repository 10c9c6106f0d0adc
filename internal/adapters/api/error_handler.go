package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	errorspkg "synergyai.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

const internalErrorMessage = "Internal server error"

// errorMapping is the response for one AppError type. An empty message
// passes the AppError message through to the client.
type errorMapping struct {
	status  int
	message string
}

var errorMappings = map[errorspkg.ErrorType]errorMapping{
	errorspkg.ValidationError:   {status: http.StatusBadRequest},
	errorspkg.NotFoundError:     {status: http.StatusNotFound},
	errorspkg.UnauthorizedError: {status: http.StatusUnauthorized},
	errorspkg.ExternalAPIError:  {status: http.StatusServiceUnavailable, message: "External service unavailable"},
	errorspkg.TimeoutError:      {status: http.StatusGatewayTimeout, message: "Upstream request timed out"},
}

// handleError maps application errors to HTTP responses. Producer and cache
// internals never reach the client for 5xx answers.
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		slog.Error("Unhandled error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
		return
	}

	mapping, ok := errorMappings[appErr.Type]
	if !ok {
		mapping = errorMapping{status: http.StatusInternalServerError, message: internalErrorMessage}
	}
	message := mapping.message
	if message == "" {
		message = appErr.Message
	}

	if mapping.status >= http.StatusInternalServerError {
		slog.Error("Request failed", "path", c.FullPath(), "status", mapping.status, "type", appErr.Type.String(), "error", err)
	}
	c.JSON(mapping.status, ErrorResponse{Error: message})
}
