package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError(t *testing.T) {
	cause := errors.New("AuthorizationFailed")
	err := fmt.Errorf("set threshold: %w", &ConfigurationError{Kind: AuthorizationError, StatusCode: 403, ErrorCode: "AuthorizationFailed", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsKind(err, AuthorizationError))
	assert.False(t, IsKind(err, ValidationError))
	assert.False(t, IsKind(cause, AuthorizationError))
	assert.Contains(t, err.Error(), "authorization error (AuthorizationFailed)")
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "authentication", AuthenticationError.String())
	assert.Equal(t, "transport", TransportError.String())
	assert.Equal(t, "validation", ValidationError.String())
	assert.Equal(t, "authorization", AuthorizationError.String())
	assert.Equal(t, "not found", NotFoundError.String())
	assert.Equal(t, "unknown", ErrorKind(42).String())
}
