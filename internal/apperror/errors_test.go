package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisErrorUnwrapsToCause(t *testing.T) {
	cause := &GatewayError{Provider: "openrouter", StatusCode: 500, Body: "boom", Message: "request failed"}
	err := fmt.Errorf("submit: %w", NewAnalysisError("gateway call failed", cause))

	var gw *GatewayError
	assert.True(t, errors.As(err, &gw))
	assert.Equal(t, 500, gw.StatusCode)

	var an *AnalysisError
	assert.True(t, errors.As(err, &an))
	assert.Contains(t, err.Error(), "status 500")
}

func TestConfigErrorDoesNotLeakValue(t *testing.T) {
	err := NewConfigError("OPENROUTER_API_KEY")
	assert.Equal(t, "configuration error: OPENROUTER_API_KEY is not set", err.Error())
}

func TestValidationWrapsSentinel(t *testing.T) {
	err := &ValidationError{Message: "already done", Err: ErrAlreadyCompleted}
	assert.True(t, errors.Is(err, ErrAlreadyCompleted))
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
}

func TestNotFound(t *testing.T) {
	err := fmt.Errorf("load: %w", NewNotFoundError("pointer", "abc"))
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "load: pointer not found: abc", err.Error())
}
