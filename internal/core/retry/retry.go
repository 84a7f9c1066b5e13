// Package retry implements the CORE's RetryService: a bounded attempt loop
// with result-sensitive re-entry and exception classification, built on top
// of github.com/avast/retry-go/v4 rather than a hand-rolled loop.
package retry

import (
	"context"
	"errors"
	"time"

	retrygo "github.com/avast/retry-go/v4"

	"clinicwa/internal/core/coreerr"
	"clinicwa/internal/core/coreresult"
	"clinicwa/pkg/logger"
)

// Op is a lazy operation yielding an OperationResult.
type Op[T any] func(ctx context.Context) (coreresult.Result[T], error)

// ShouldRetry decides, from the last result, whether to re-run the
// operation. The default only retries while the result is Waiting.
type ShouldRetry[T any] func(result coreresult.Result[T]) bool

// IsRetryableException decides whether a thrown error restarts the loop.
// The default treats coreerr transient browser/network faults as
// retryable and everything else as terminal.
type IsRetryableException func(err error) bool

// DefaultShouldRetry retries only on a Waiting result.
func DefaultShouldRetry[T any](result coreresult.Result[T]) bool {
	return result.State == coreresult.StateWaiting
}

// DefaultIsRetryableException classifies transient browser/network faults
// as retryable, everything else as terminal.
func DefaultIsRetryableException(err error) bool {
	return coreerr.IsRetryable(err)
}

// Config bounds attempts and backoff for ExecuteWithRetry. Never a magic
// constant inside this package: callers inject these from
// internal/infra/config.CoreConfig.
type Config struct {
	MaxAttempts uint
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Service executes operations through a bounded, backed-off retry loop.
type Service struct {
	cfg    Config
	logger logger.Logger
}

// New builds a retry Service from the injected configuration and logger.
func New(cfg Config, log logger.Logger) *Service {
	if log == nil {
		log = &logger.NoopLogger{}
	}
	return &Service{cfg: cfg, logger: log}
}

// errWaiting is the sentinel used internally to make retry-go's
// error-centric attempt loop re-enter on a non-error Waiting result: the
// library only retries on a returned error, but this package's contract is
// result-centric. Wrapping a Waiting outcome in errWaiting bridges the two
// models without leaking retry-go's error type across ExecuteWithRetry's
// public contract.
type errWaiting[T any] struct {
	result coreresult.Result[T]
}

func (e *errWaiting[T]) Error() string { return e.result.Message }

// ExecuteWithRetry runs op up to maxAttempts times (0 means use the
// service's configured default), honoring shouldRetry/isRetryableException
// overrides when provided. Terminal states (Success, Failure, PendingQR,
// PendingNET) stop the loop immediately; an exhausted Waiting result is
// returned as-is, never upgraded to Failure.
func ExecuteWithRetry[T any](
	ctx context.Context,
	s *Service,
	op Op[T],
	maxAttempts uint,
	shouldRetry ShouldRetry[T],
	isRetryableException IsRetryableException,
) coreresult.Result[T] {
	if shouldRetry == nil {
		shouldRetry = DefaultShouldRetry[T]
	}
	if isRetryableException == nil {
		isRetryableException = DefaultIsRetryableException
	}
	if maxAttempts == 0 {
		maxAttempts = s.cfg.MaxAttempts
	}
	if maxAttempts == 0 {
		maxAttempts = 1
	}

	// Seeded so that an op which never once returns a nil error still
	// resolves to Waiting rather than the zero Result (whose State is the
	// iota-zero StateSuccess — a spurious, data-less success).
	last := coreresult.Waiting[T]("no attempt completed")
	attempt := 0

	runErr := retrygo.Do(
		func() error {
			attempt++
			result, err := op(ctx)
			if err != nil {
				if !isRetryableException(err) {
					last = coreresult.Failure[T](err.Error())
					return retrygo.Unrecoverable(err)
				}
				last = coreresult.Waiting[T](err.Error())
				return &errWaiting[T]{result: last}
			}

			last = result
			if result.IsTerminal() {
				return nil
			}
			if !shouldRetry(result) {
				return nil
			}
			return &errWaiting[T]{result: result}
		},
		retrygo.Context(ctx),
		retrygo.Attempts(maxAttempts),
		retrygo.Delay(s.cfg.BaseDelay),
		retrygo.MaxDelay(s.cfg.MaxDelay),
		retrygo.DelayType(retrygo.BackOffDelay),
		retrygo.LastErrorOnly(true),
		retrygo.RetryIf(func(err error) bool {
			var w *errWaiting[T]
			if errors.As(err, &w) {
				return true
			}
			return false
		}),
		retrygo.OnRetry(func(n uint, err error) {
			s.logger.DebugWithFields("retrying operation", logger.Fields{
				"attempt": n + 1,
				"reason":  err.Error(),
			})
		}),
	)

	// last is assigned on every path through the closure above (success,
	// terminal failure, or exhausted-while-waiting), so runErr itself never
	// needs inspecting here.
	_ = runErr
	return last
}
