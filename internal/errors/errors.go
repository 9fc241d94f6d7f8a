// Package errors provides custom error types for mdlive.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for common cases
var (
	ErrRendererUnavailable = errors.New("markdown renderer unavailable")
	ErrElementMissing      = errors.New("page element missing")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUnknownConfigKey    = errors.New("unknown config key")
)

// RenderError represents a failure reported by the markdown collaborator
type RenderError struct {
	Stage string // "render", "highlight" or "configure"
	Err   error
}

func (e *RenderError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("render failed: %v", e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError
func NewRenderError(stage string, err error) *RenderError {
	return &RenderError{Stage: stage, Err: err}
}

// ElementError reports a page element that could not be found
type ElementError struct {
	ID string
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("page element %q not found", e.ID)
}

// Is allows comparison with sentinel errors
func (e *ElementError) Is(target error) bool {
	if target == ErrElementMissing {
		return true
	}
	_, ok := target.(*ElementError)
	return ok
}

// NewElementError creates a new ElementError
func NewElementError(id string) *ElementError {
	return &ElementError{ID: id}
}

// RequestError represents a malformed HTTP request
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("request error [%d]: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *RequestError) Is(target error) bool {
	if target == ErrInvalidRequest {
		return true
	}
	_, ok := target.(*RequestError)
	return ok
}

// NewRequestError creates a new RequestError
func NewRequestError(statusCode int, message string) *RequestError {
	return &RequestError{StatusCode: statusCode, Message: message}
}

// NewBadRequest creates a RequestError with status 400
func NewBadRequest(message string) *RequestError {
	return NewRequestError(http.StatusBadRequest, message)
}

// ConfigError represents an invalid configuration value
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error at %s: %s", e.Key, e.Message)
}

// NewConfigError creates a new ConfigError
func NewConfigError(key, message string) *ConfigError {
	return &ConfigError{Key: key, Message: message}
}

// GetHTTPStatus extracts the HTTP status code from an error chain.
// Returns 0 when no RequestError is present.
func GetHTTPStatus(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

// IsRequestError reports whether err is a RequestError
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// IsRenderError reports whether err is a RenderError
func IsRenderError(err error) bool {
	var renderErr *RenderError
	return errors.As(err, &renderErr)
}

// IsConfigError reports whether err is a ConfigError or an unknown key
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr) || errors.Is(err, ErrUnknownConfigKey)
}
