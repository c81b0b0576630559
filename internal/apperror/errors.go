// Package apperror defines the error kinds surfaced by the coach: provider
// configuration, gateway transport, model-output decoding, analysis, input
// validation, missing resources and ownership failures.
package apperror

import (
	"errors"
	"fmt"
)

// ErrAlreadyCompleted is wrapped when a completed pointer is completed again.
var ErrAlreadyCompleted = errors.New("pointer already completed")

// ConfigError reports a missing provider setting. Only the setting name is kept.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s is not set", e.Key)
}

func NewConfigError(key string) *ConfigError {
	return &ConfigError{Key: key}
}

// GatewayError is a failed call to the language-model provider.
type GatewayError struct {
	Provider   string
	StatusCode int
	Body       string
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	msg := e.Provider + " gateway error: " + e.Message
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// DecodeError means no valid JSON could be recovered from a model response.
type DecodeError struct {
	Preview string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model returned invalid JSON (%v). Response: %s", e.Err, e.Preview)
	}
	return "model returned invalid JSON. Response: " + e.Preview
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AnalysisError wraps any failure of the primary feedback analysis.
type AnalysisError struct {
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return "analysis failed: " + e.Message + ": " + e.Err.Error()
	}
	return "analysis failed: " + e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

func NewAnalysisError(message string, err error) *AnalysisError {
	return &AnalysisError{Message: message, Err: err}
}

// ValidationError is bad caller input. Fields maps field names to problems.
type ValidationError struct {
	Message string
	Fields  map[string]string
	Err     error
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "unauthorized"
	}
	return "unauthorized: " + e.Message
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
