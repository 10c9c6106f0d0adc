package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ValidationError, "cache key cannot be empty")
			},
			expected: "VALIDATION_ERROR: cache key cannot be empty",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("connection refused")
				return Wrap(CacheError, "redis get failed", cause)
			},
			expected: "CACHE_ERROR: redis get failed (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.setup().Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("original error")
	err := NewExternalAPIError("llm call failed", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, stderrors.Is(err, cause))
	assert.Nil(t, NewNotFoundError("project not found").Unwrap())
}

func TestTypeOf_WrappedChain(t *testing.T) {
	inner := NewDatabaseError("select failed", nil)
	wrapped := fmt.Errorf("fetch team: %w", inner)

	assert.Equal(t, DatabaseError, TypeOf(wrapped))
	assert.True(t, IsDatabaseError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(fmt.Errorf("plain")))
}

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{ValidationError, "VALIDATION_ERROR"},
		{NotFoundError, "NOT_FOUND_ERROR"},
		{UnauthorizedError, "UNAUTHORIZED_ERROR"},
		{DatabaseError, "DATABASE_ERROR"},
		{ExternalAPIError, "EXTERNAL_API_ERROR"},
		{CacheError, "CACHE_ERROR"},
		{TimeoutError, "TIMEOUT_ERROR"},
		{ConfigurationError, "CONFIGURATION_ERROR"},
		{ErrorTypeUnknown, "UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errType.String())
		})
	}
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError("bad")))
	assert.True(t, IsUnauthorizedError(NewUnauthorizedError("no token")))
	assert.True(t, IsExternalAPIError(NewExternalAPIError("down", nil)))
	assert.True(t, IsCacheError(NewCacheError("down", nil)))
	assert.True(t, IsConfigurationError(NewConfigurationError("bad env", nil)))
	assert.False(t, IsCacheError(nil))
}
