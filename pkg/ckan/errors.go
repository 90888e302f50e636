package ckan

import (
	"errors"
	"fmt"
)

// APIError represents the error object of a CKAN envelope with success=false.
type APIError struct {
	Type    string `json:"__type"  yaml:"type"`
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Type == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// TransportError reports a request that failed after exhausting its retry
// budget. It is fatal to the calling operation and always surfaced.
type TransportError struct {
	Endpoint string
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed after %d attempt(s): %v", e.Endpoint, e.Attempts, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a paginated fetch that exceeded its page ceiling
// without the backend ever reporting a count or returning a short page.
type ProtocolError struct {
	Endpoint string
	Pages    int
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("pagination of %s exceeded %d pages without terminating", e.Endpoint, e.Pages)
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrEndpointRequired     = errors.New("endpoint is required")
	ErrNoHostInURL          = errors.New("no host specified in URL")
	ErrUnsupportedFormat    = errors.New("unsupported export format")
	ErrCacheKeyNotFound     = errors.New("key not found")
	ErrCacheDisabled        = errors.New("cache disabled")
	ErrUnsupportedCacheType = errors.New("unsupported cache type")
	ErrNATSConfigRequired   = errors.New("NATS configuration required for NATS cache")
	ErrInvalidTimeout       = errors.New("timeout must be positive")
	ErrInvalidRateLimit     = errors.New("rate limit delay must be positive")
	ErrInvalidMaxRetries    = errors.New("max retries must be positive")
	ErrInvalidPageSize      = errors.New("page size must be positive")
)

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}

// IsProtocol reports whether err is (or wraps) a ProtocolError.
func IsProtocol(err error) bool {
	protocolErr := &ProtocolError{}

	return errors.As(err, &protocolErr)
}
