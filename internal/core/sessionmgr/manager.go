// Package sessionmgr implements the session manager: a per-moderator
// singleton map of browser sessions with lazy creation and explicit
// disposal.
package sessionmgr

import (
	"context"
	"sync"

	"clinicwa/internal/core/browser"
	"clinicwa/internal/core/coreerr"
	"clinicwa/pkg/logger"
)

// slotState models the per-slot lifecycle: None -> Initializing -> Ready ->
// Disposed. There is no re-use after Disposed; a new GetOrCreate creates a
// new slot.
type slotState int

const (
	slotInitializing slotState = iota
	slotReady
	slotDisposed
)

type slot struct {
	mu      sync.Mutex
	state   slotState
	session browser.Session
}

// Manager owns every live BrowserSession, enforcing at-most-one session per
// moderator. Access is guarded by a slot-level lock so concurrent
// GetOrCreate calls for the same moderator are safe while different
// moderators proceed in parallel — never a global lock.
type Manager struct {
	factory  func(ctx context.Context, moderatorID string) (browser.Session, error)
	entryURL string
	logger   logger.Logger

	slots sync.Map // moderatorID -> *slot

	creationMu sync.Map // moderatorID -> *sync.Mutex, guards slot creation
}

// New builds a SessionManager. factory constructs+initializes a fresh
// browser.Session for a moderator; it is invoked at most once per slot
// lifetime (i.e. once between a GetOrCreate and the next DisposeSession).
func New(factory func(ctx context.Context, moderatorID string) (browser.Session, error), entryURL string, log logger.Logger) *Manager {
	if log == nil {
		log = &logger.NoopLogger{}
	}
	return &Manager{factory: factory, entryURL: entryURL, logger: log}
}

func (m *Manager) creationLock(moderatorID string) *sync.Mutex {
	lock, _ := m.creationMu.LoadOrStore(moderatorID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// GetOrCreateSession returns the existing slot's session for moderatorID if
// one exists (the factory is NOT re-invoked); otherwise it constructs one
// via the injected factory, initializes it, navigates to the entry URL,
// and stores it. Concurrent creates for the same moderator produce at most
// one session. If initialization fails the slot is not stored.
func (m *Manager) GetOrCreateSession(ctx context.Context, moderatorID string) (browser.Session, error) {
	lock := m.creationLock(moderatorID)
	lock.Lock()
	defer lock.Unlock()

	if existing, ok := m.slots.Load(moderatorID); ok {
		sl := existing.(*slot)
		sl.mu.Lock()
		defer sl.mu.Unlock()
		if sl.state == slotReady {
			return sl.session, nil
		}
	}

	session, err := m.factory(ctx, moderatorID)
	if err != nil {
		return nil, err
	}
	if err := session.Initialize(ctx); err != nil {
		return nil, err
	}
	if err := session.NavigateTo(ctx, m.entryURL); err != nil {
		return nil, err
	}

	sl := &slot{state: slotReady, session: session}
	m.slots.Store(moderatorID, sl)

	m.logger.InfoWithFields("browser session created", logger.Fields{"moderator_id": moderatorID})
	return session, nil
}

// GetCurrentSession returns the moderator's session if one exists, never
// creating one.
func (m *Manager) GetCurrentSession(moderatorID string) (browser.Session, bool) {
	existing, ok := m.slots.Load(moderatorID)
	if !ok {
		return nil, false
	}
	sl := existing.(*slot)
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.state != slotReady {
		return nil, false
	}
	return sl.session, true
}

// IsSessionReady reports whether a session exists for moderatorID AND a
// readiness probe (caller-supplied) reports the main UI is mounted.
func (m *Manager) IsSessionReady(ctx context.Context, moderatorID string, probe func(ctx context.Context, session browser.Session) bool) bool {
	session, ok := m.GetCurrentSession(moderatorID)
	if !ok {
		return false
	}
	return probe(ctx, session)
}

// DisposeSession releases the slot; a subsequent GetCurrentSession returns
// none. Safe to call when no session exists.
func (m *Manager) DisposeSession(ctx context.Context, moderatorID string) error {
	existing, ok := m.slots.Load(moderatorID)
	if !ok {
		return nil
	}
	sl := existing.(*slot)
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.state == slotDisposed {
		return nil
	}

	err := sl.session.Dispose(ctx)
	sl.state = slotDisposed
	m.slots.Delete(moderatorID)

	if err != nil {
		m.logger.WarnWithError("error disposing browser session", err, logger.Fields{"moderator_id": moderatorID})
		return coreerr.NewWithCause(coreerr.KindNonRetryableDriver, "dispose failed", err).WithContext("moderator_id", moderatorID)
	}
	return nil
}
