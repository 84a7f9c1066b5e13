// Package coreerr implements the CORE's error-kind taxonomy: sentinel
// errors plus a CoreError carrying structured context, mirroring the
// ModeratorError pattern of internal/domain/moderator.
package coreerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the kinds named in the error handling design.
var (
	ErrTransientBrowserFault = errors.New("transient browser fault")
	ErrNetworkLoss           = errors.New("network connectivity lost")
	ErrAuthRequired          = errors.New("authentication required")
	ErrInvalidRecipient      = errors.New("recipient does not have whatsapp registered")
	ErrNonRetryableDriver    = errors.New("non-retryable driver error")
	ErrClassificationTimeout = errors.New("status classification timeout")

	ErrSessionNotFound  = errors.New("browser session not found for moderator")
	ErrSessionDisposed  = errors.New("browser session already disposed")
	ErrNoModeratorSlot  = errors.New("no session slot for moderator")
	ErrPauseReasonEmpty = errors.New("pause reason must not be empty")
)

// Kind enumerates the error taxonomy used across the CORE components.
type Kind string

const (
	KindTransientBrowserFault Kind = "TRANSIENT_BROWSER_FAULT"
	KindNetworkLoss           Kind = "NETWORK_LOSS"
	KindAuthRequired          Kind = "AUTH_REQUIRED"
	KindInvalidRecipient      Kind = "INVALID_RECIPIENT"
	KindNonRetryableDriver    Kind = "NON_RETRYABLE_DRIVER_ERROR"
	KindTimeout               Kind = "TIMEOUT"
)

// CoreError carries a Kind plus structured context, following the same
// shape the moderator domain uses for its errors.
type CoreError struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *CoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CoreError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a context key/value and returns the receiver for chaining.
func (e *CoreError) WithContext(key string, value interface{}) *CoreError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a CoreError of the given kind.
func New(kind Kind, message string) *CoreError {
	return &CoreError{Kind: kind, Message: message}
}

// NewWithCause creates a CoreError wrapping a cause.
func NewWithCause(kind Kind, message string, cause error) *CoreError {
	return &CoreError{Kind: kind, Message: message, Cause: cause}
}

// IsRetryable reports whether the given error should be treated as
// retryable by the RetryService's default isRetryableException predicate:
// transient browser/network faults are retryable, everything else is
// terminal.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var ce *CoreError
	if errors.As(err, &ce) {
		switch ce.Kind {
		case KindTransientBrowserFault, KindNetworkLoss:
			return true
		default:
			return false
		}
	}
	return errors.Is(err, ErrTransientBrowserFault) || errors.Is(err, ErrNetworkLoss)
}

// IsAuthRequired reports whether err denotes the authentication tier.
func IsAuthRequired(err error) bool {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Kind == KindAuthRequired
	}
	return errors.Is(err, ErrAuthRequired)
}

// IsInvalidRecipient reports whether err denotes an invalid-recipient dialog.
func IsInvalidRecipient(err error) bool {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Kind == KindInvalidRecipient
	}
	return errors.Is(err, ErrInvalidRecipient)
}
