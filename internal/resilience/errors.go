// Package resilience provides the retry and circuit-breaker primitives used
// when calling external registries and the CRM. Callers classify failures as
// transient or permanent; only transient failures are worth retrying.
package resilience

import "errors"

// TransientError marks a failure that is expected to clear on its own, such
// as a registry returning 503 or Salesforce throttling a request. Status
// carries the upstream HTTP status when one exists, zero otherwise.
type TransientError struct {
	Err    error
	Status int
}

func (e *TransientError) Error() string { return e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// NewTransientError wraps err as retryable. status may be zero for non-HTTP
// failures like connection resets.
func NewTransientError(err error, status int) error {
	return &TransientError{Err: err, Status: status}
}

// IsTransient reports whether err, anywhere in its chain, was marked
// transient. Unmarked errors are treated as permanent.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
