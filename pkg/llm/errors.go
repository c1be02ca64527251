package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured means credentials or the endpoint are missing. This is
// fatal: callers must fail fast, never retry and never fall back.
var ErrNotConfigured = errors.New("llm provider is not configured")

// Upstream failure kinds. All of them are recoverable, i.e. they allow the
// caller to try the fallback provider.
const (
	FailureTimeout     = "TIMEOUT"
	FailureUnavailable = "UNAVAILABLE"
	FailureMalformed   = "MALFORMED"
)

// UpstreamError wraps a provider failure with its classification.
type UpstreamError struct {
	Provider string
	Kind     string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Provider, e.Kind)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(provider, kind string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Kind: kind, Err: err}
}

// ClassifyCallError maps a transport-level failure to the taxonomy. Caller
// cancellation passes through untouched so it is never mistaken for an
// upstream failure.
func ClassifyCallError(ctx context.Context, provider string, err error) error {
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewUpstreamError(provider, FailureTimeout, err)
	}
	return NewUpstreamError(provider, FailureUnavailable, err)
}

// IsRecoverable reports whether the fallback provider may be attempted.
func IsRecoverable(err error) bool {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// IsCancellation reports a caller disconnect. Cancellation bypasses fallback
// and is excluded from generic failure accounting.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

// FailureKind extracts the audit classification for a terminal error.
func FailureKind(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	if errors.Is(err, ErrNotConfigured) {
		return "NOT_CONFIGURED"
	}
	if errors.Is(err, context.Canceled) {
		return "CANCELLED"
	}
	return "UNKNOWN"
}
