package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind separates the three failure classes callers can react to.
type Kind string

const (
	KindTimeout Kind = "timeout"
	KindNetwork Kind = "network"
	KindServer  Kind = "server"
)

// APIError is a failed backend call. Server-kind errors carry the HTTP
// status and the envelope message when one was decodable.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("request timed out: %s", e.Message)
	case KindNetwork:
		return fmt.Sprintf("network error: %s", e.Message)
	default:
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
}

// IsTimeout reports whether the request exceeded its time budget.
func IsTimeout(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindTimeout
}

// IsNetwork reports whether no response was received at all.
func IsNetwork(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetwork
}

// IsServer reports whether the backend answered with an error.
func IsServer(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindServer
}

// IsUnauthorized reports whether the backend rejected our credentials.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// ErrorMessage extracts a user-facing message, falling back when the error
// carries nothing displayable.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
