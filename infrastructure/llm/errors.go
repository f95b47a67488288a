package llm

import (
	"context"
	"errors"
	"fmt"
)

// Common errors returned by providers.
var (
	// ErrEmptyAPIKey indicates a provider required an API key that was
	// not supplied.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")
	// ErrEmptyResponse indicates the provider returned an empty body.
	ErrEmptyResponse = errors.New("empty response from API")
	// ErrNoResponseChoice indicates the provider response carried no
	// completion choices.
	ErrNoResponseChoice = errors.New("no response choices returned")
)

// ErrorType classifies a provider failure for standardized handling.
type ErrorType int

const (
	// ErrorTypeUnknown is an error of undetermined category.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeAuthentication covers invalid or rejected credentials.
	ErrorTypeAuthentication
	// ErrorTypeRateLimit covers provider-side throttling.
	ErrorTypeRateLimit
	// ErrorTypeBadRequest covers malformed requests and parameters.
	ErrorTypeBadRequest
	// ErrorTypeServerError covers failures on the provider's end.
	ErrorTypeServerError
	// ErrorTypeContentPolicy covers safety-filter rejections.
	ErrorTypeContentPolicy
	// ErrorTypeNetwork covers client-side network problems.
	ErrorTypeNetwork
	// ErrorTypeTimeout covers requests that exceeded their deadline.
	ErrorTypeTimeout
)

// ProviderError normalizes provider-specific failures into a common
// shape with a classified type, an HTTP status where applicable, and the
// original error for unwrapping.
type ProviderError struct {
	Type         ErrorType
	Provider     string
	StatusCode   int
	Message      string
	WrappedError error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	base := fmt.Sprintf("%s error", e.Provider)
	if e.StatusCode > 0 {
		base += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if s := e.typeString(); s != "" {
		base += fmt.Sprintf(" [%s]", s)
	}
	if e.Message != "" {
		base += ": " + e.Message
	}
	if e.WrappedError != nil {
		base += fmt.Sprintf(": %v", e.WrappedError)
	}
	return base
}

// Unwrap returns the original error for errors.Is / errors.As.
func (e *ProviderError) Unwrap() error { return e.WrappedError }

func (e *ProviderError) typeString() string {
	switch e.Type {
	case ErrorTypeAuthentication:
		return "authentication"
	case ErrorTypeRateLimit:
		return "rate_limit"
	case ErrorTypeBadRequest:
		return "bad_request"
	case ErrorTypeServerError:
		return "server_error"
	case ErrorTypeContentPolicy:
		return "content_policy"
	case ErrorTypeNetwork:
		return "network"
	case ErrorTypeTimeout:
		return "timeout"
	default:
		return ""
	}
}

// NewProviderError builds a classified ProviderError.
func NewProviderError(provider string, errType ErrorType, statusCode int, message string, wrapped error) *ProviderError {
	return &ProviderError{
		Type:         errType,
		Provider:     provider,
		StatusCode:   statusCode,
		Message:      message,
		WrappedError: wrapped,
	}
}

// ErrorClassifier maps raw provider errors onto ProviderError instances
// for one named provider.
type ErrorClassifier struct {
	Provider string
}

// ClassifyHTTPError classifies an error by its HTTP status code.
func (ec *ErrorClassifier) ClassifyHTTPError(statusCode int, message string, err error) *ProviderError {
	var errType ErrorType
	switch {
	case statusCode == 401 || statusCode == 403:
		errType = ErrorTypeAuthentication
		message = fmt.Sprintf("%s authentication failed", ec.Provider)
	case statusCode == 429:
		errType = ErrorTypeRateLimit
		message = fmt.Sprintf("%s rate limit exceeded", ec.Provider)
	case statusCode >= 400 && statusCode < 500:
		errType = ErrorTypeBadRequest
	case statusCode >= 500:
		errType = ErrorTypeServerError
	default:
		errType = ErrorTypeUnknown
	}
	return NewProviderError(ec.Provider, errType, statusCode, message, err)
}

// ClassifyContextError classifies context cancellation and deadline
// errors. Deadline exceeded maps to ErrorTypeTimeout, cancellation to
// ErrorTypeNetwork.
func (ec *ErrorClassifier) ClassifyContextError(err error) *ProviderError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewProviderError(ec.Provider, ErrorTypeTimeout, 0, "deadline exceeded", err)
	case errors.Is(err, context.Canceled):
		return NewProviderError(ec.Provider, ErrorTypeNetwork, 0, "request canceled", err)
	default:
		return NewProviderError(ec.Provider, ErrorTypeUnknown, 0, "", err)
	}
}
