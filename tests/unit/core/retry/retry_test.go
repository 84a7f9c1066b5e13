package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicwa/internal/core/coreerr"
	"clinicwa/internal/core/coreresult"
	"clinicwa/internal/core/retry"
	"clinicwa/pkg/logger"
)

func newService(maxAttempts uint) *retry.Service {
	return retry.New(retry.Config{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	}, &logger.NoopLogger{})
}

func TestExecuteWithRetry_StopsOnTerminalResult(t *testing.T) {
	svc := newService(5)
	calls := 0

	result := retry.ExecuteWithRetry(context.Background(), svc, func(ctx context.Context) (coreresult.Result[string], error) {
		calls++
		return coreresult.Success("done", "ok"), nil
	}, 0, nil, nil)

	assert.Equal(t, 1, calls)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, "done", result.Data)
}

func TestExecuteWithRetry_RetriesWhileWaiting(t *testing.T) {
	svc := newService(5)
	calls := 0

	result := retry.ExecuteWithRetry(context.Background(), svc, func(ctx context.Context) (coreresult.Result[string], error) {
		calls++
		if calls < 3 {
			return coreresult.Waiting[string]("still loading"), nil
		}
		return coreresult.Success("ready", "ok"), nil
	}, 0, nil, nil)

	assert.Equal(t, 3, calls)
	assert.True(t, result.IsSuccess())
}

func TestExecuteWithRetry_ExhaustsWithoutUpgradingWaitingToFailure(t *testing.T) {
	svc := newService(3)

	result := retry.ExecuteWithRetry(context.Background(), svc, func(ctx context.Context) (coreresult.Result[string], error) {
		return coreresult.Waiting[string]("still loading"), nil
	}, 0, nil, nil)

	assert.Equal(t, coreresult.StateWaiting, result.State)
}

func TestExecuteWithRetry_StopsOnNonRetryableError(t *testing.T) {
	svc := newService(5)
	calls := 0

	result := retry.ExecuteWithRetry(context.Background(), svc, func(ctx context.Context) (coreresult.Result[string], error) {
		calls++
		return coreresult.Result[string]{}, errors.New("boom: not transient")
	}, 0, nil, nil)

	assert.Equal(t, 1, calls)
	assert.Equal(t, coreresult.StateFailure, result.State)
}

func TestExecuteWithRetry_RetriesOnTransientException(t *testing.T) {
	svc := newService(5)
	calls := 0

	result := retry.ExecuteWithRetry(context.Background(), svc, func(ctx context.Context) (coreresult.Result[string], error) {
		calls++
		if calls < 2 {
			return coreresult.Result[string]{}, coreerr.ErrTransientBrowserFault
		}
		return coreresult.Success("recovered", "ok"), nil
	}, 0, nil, nil)

	require.GreaterOrEqual(t, calls, 2)
	assert.True(t, result.IsSuccess())
}

func TestExecuteWithRetry_ExhaustsOnAlwaysRetryableExceptionWithoutSpuriousSuccess(t *testing.T) {
	svc := newService(3)
	calls := 0

	result := retry.ExecuteWithRetry(context.Background(), svc, func(ctx context.Context) (coreresult.Result[string], error) {
		calls++
		return coreresult.Result[string]{}, coreerr.ErrTransientBrowserFault
	}, 0, nil, nil)

	assert.Equal(t, 3, calls)
	assert.Equal(t, coreresult.StateWaiting, result.State)
	assert.False(t, result.IsSuccess())
}

func TestExecuteWithRetry_HonorsCustomShouldRetry(t *testing.T) {
	svc := newService(5)
	calls := 0

	alwaysStop := func(result coreresult.Result[string]) bool { return false }

	result := retry.ExecuteWithRetry(context.Background(), svc, func(ctx context.Context) (coreresult.Result[string], error) {
		calls++
		return coreresult.Waiting[string]("still loading"), nil
	}, 0, alwaysStop, nil)

	assert.Equal(t, 1, calls)
	assert.Equal(t, coreresult.StateWaiting, result.State)
}
