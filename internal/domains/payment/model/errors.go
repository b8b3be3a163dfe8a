package model

import (
	"errors"
	"fmt"
)

// =====================================================
// PREDEFINED ERRORS
// =====================================================

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrInvalidProvider = errors.New("invalid payment provider")
	ErrUnknownProvider = errors.New("unknown payment provider")

	// ErrConfiguration means a required credential or config value is absent.
	// Raised before any network call, always propagated to the caller.
	ErrConfiguration = errors.New("gateway configuration error")
)

// =====================================================
// TRANSPORT ERROR
// =====================================================

// TransportError wraps a non-2xx provider response or a network failure.
// The upstream response body is attached for diagnostics.
type TransportError struct {
	Provider   string
	Operation  string
	StatusCode int    // 0 when the request never completed
	Body       string // Upstream response body, may be empty
	Err        error  // Underlying network error, nil on non-2xx
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: transport failure: %v", e.Provider, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s %s: upstream returned %d: %s", e.Provider, e.Operation, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewConfigurationError reports a missing credential by field name only.
// Credential values never appear in error messages.
func NewConfigurationError(provider, field string) error {
	return fmt.Errorf("%w: %s: missing %s", ErrConfiguration, provider, field)
}

// =====================================================
// PAYMENT ERROR (service layer)
// =====================================================

// PaymentError carries an internal code for HTTP mapping at the handler.
type PaymentError struct {
	Code    string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

func NewPaymentError(code, message string, err error) *PaymentError {
	return &PaymentError{Code: code, Message: message, Err: err}
}
