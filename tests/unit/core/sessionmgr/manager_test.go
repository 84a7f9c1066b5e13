package sessionmgr_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicwa/internal/core/browser"
	"clinicwa/internal/core/sessionmgr"
	"clinicwa/pkg/logger"
)

func countingFactory(calls *int32AtomicCounter) func(ctx context.Context, moderatorID string) (browser.Session, error) {
	return func(ctx context.Context, moderatorID string) (browser.Session, error) {
		calls.inc()
		return browser.NewNullSession(nil), nil
	}
}

type int32AtomicCounter struct {
	mu sync.Mutex
	n  int
}

func (c *int32AtomicCounter) inc() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

func (c *int32AtomicCounter) value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func TestGetOrCreateSession_CreatesOnceThenReuses(t *testing.T) {
	calls := &int32AtomicCounter{}
	mgr := sessionmgr.New(countingFactory(calls), "https://web.whatsapp.com", &logger.NoopLogger{})

	s1, err := mgr.GetOrCreateSession(context.Background(), "mod-1")
	require.NoError(t, err)

	s2, err := mgr.GetOrCreateSession(context.Background(), "mod-1")
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.Equal(t, 1, calls.value())
}

func TestGetOrCreateSession_SeparateModeratorsGetSeparateSessions(t *testing.T) {
	calls := &int32AtomicCounter{}
	mgr := sessionmgr.New(countingFactory(calls), "https://web.whatsapp.com", &logger.NoopLogger{})

	s1, err := mgr.GetOrCreateSession(context.Background(), "mod-1")
	require.NoError(t, err)
	s2, err := mgr.GetOrCreateSession(context.Background(), "mod-2")
	require.NoError(t, err)

	assert.NotSame(t, s1, s2)
	assert.Equal(t, 2, calls.value())
}

func TestGetOrCreateSession_ConcurrentCallsCreateAtMostOneSession(t *testing.T) {
	calls := &int32AtomicCounter{}
	mgr := sessionmgr.New(countingFactory(calls), "https://web.whatsapp.com", &logger.NoopLogger{})

	const concurrency = 10
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			_, err := mgr.GetOrCreateSession(context.Background(), "mod-shared")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls.value())
}

func TestGetOrCreateSession_FactoryErrorLeavesNoSlot(t *testing.T) {
	factoryErr := errors.New("browser binary missing")
	mgr := sessionmgr.New(func(ctx context.Context, moderatorID string) (browser.Session, error) {
		return nil, factoryErr
	}, "https://web.whatsapp.com", &logger.NoopLogger{})

	_, err := mgr.GetOrCreateSession(context.Background(), "mod-1")
	assert.ErrorIs(t, err, factoryErr)

	_, ok := mgr.GetCurrentSession("mod-1")
	assert.False(t, ok)
}

func TestGetCurrentSession_AbsentWithoutCreation(t *testing.T) {
	calls := &int32AtomicCounter{}
	mgr := sessionmgr.New(countingFactory(calls), "https://web.whatsapp.com", &logger.NoopLogger{})

	_, ok := mgr.GetCurrentSession("never-created")
	assert.False(t, ok)
	assert.Equal(t, 0, calls.value())
}

func TestDisposeSession_RemovesSlotAndAllowsRecreation(t *testing.T) {
	calls := &int32AtomicCounter{}
	mgr := sessionmgr.New(countingFactory(calls), "https://web.whatsapp.com", &logger.NoopLogger{})
	ctx := context.Background()

	_, err := mgr.GetOrCreateSession(ctx, "mod-1")
	require.NoError(t, err)

	require.NoError(t, mgr.DisposeSession(ctx, "mod-1"))

	_, ok := mgr.GetCurrentSession("mod-1")
	assert.False(t, ok)

	_, err = mgr.GetOrCreateSession(ctx, "mod-1")
	require.NoError(t, err)
	assert.Equal(t, 2, calls.value())
}

func TestDisposeSession_TolerantOfMissingSession(t *testing.T) {
	calls := &int32AtomicCounter{}
	mgr := sessionmgr.New(countingFactory(calls), "https://web.whatsapp.com", &logger.NoopLogger{})

	assert.NoError(t, mgr.DisposeSession(context.Background(), "never-created"))
}

func TestIsSessionReady_UsesCallerSuppliedProbe(t *testing.T) {
	calls := &int32AtomicCounter{}
	mgr := sessionmgr.New(countingFactory(calls), "https://web.whatsapp.com", &logger.NoopLogger{})
	ctx := context.Background()

	_, err := mgr.GetOrCreateSession(ctx, "mod-1")
	require.NoError(t, err)

	ready := mgr.IsSessionReady(ctx, "mod-1", func(ctx context.Context, session browser.Session) bool {
		return true
	})
	assert.True(t, ready)

	notReady := mgr.IsSessionReady(ctx, "mod-never-created", func(ctx context.Context, session browser.Session) bool {
		return true
	})
	assert.False(t, notReady)
}
