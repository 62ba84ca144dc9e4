package models

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySeries means the provider answered but no day had a price.
	ErrEmptySeries = errors.New("no valid price data")
	// ErrDegenerateBase means a percentage rebase was asked for a zero base price.
	ErrDegenerateBase = errors.New("base price is zero")
)

// UpstreamError is a failure reaching the quote provider or understanding its
// answer. It is reported per symbol and never retried automatically.
type UpstreamError struct {
	Symbol     string
	StatusCode int
	Cause      string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("upstream error for %s: %s", e.Symbol, e.Cause)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("upstream error for %s (status %d): %s", e.Symbol, e.StatusCode, e.Cause)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates an UpstreamError.
func NewUpstreamError(symbol string, statusCode int, cause string, err error) *UpstreamError {
	return &UpstreamError{
		Symbol:     symbol,
		StatusCode: statusCode,
		Cause:      cause,
		Err:        err,
	}
}

// ConfigError is a malformed persisted settings blob. Callers recover by
// falling back to defaults.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid settings %q: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
