package coordinator

import (
	"context"
	"time"
)

// PauseState is the per-moderator, persisted pause record. IsPaused ⇔
// PauseReason is set, at every observable moment.
type PauseState struct {
	ModeratorID  string
	IsPaused     bool
	PauseReason  string
	LastPausedBy string
	LastPausedAt time.Time
}

// Tier prefixes distinguishing the 3-tier pause hierarchy. Resume clears a
// pause only on exact string equality of the reason, which is what enforces
// tier discipline: a lower tier cannot unlock a higher tier.
const (
	ReasonPrefixAuthQR   = "PendingQR"
	ReasonPrefixNetwork  = "PendingNET"
)

// Repository persists PauseState. The pause row is the single source of
// truth — the coordinator never caches it in-process; it is read on every
// pre-flight check.
type Repository interface {
	Get(ctx context.Context, moderatorID string) (PauseState, bool, error)
	Save(ctx context.Context, state PauseState) error
}
