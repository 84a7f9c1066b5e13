// Package coordinator implements the CORE's 3-tier pause/resume hierarchy
// (OperationCoordinator): the authentication/QR tier, the network tier,
// and the advisory tier, serializing in-flight operations against
// re-auth, network loss, and cooperative shutdown drains.
package coordinator

import (
	"context"
	"time"

	"clinicwa/pkg/logger"
)

// Coordinator gates sends/validations through the persisted PauseState and
// drains in-flight OutboundMessageRecords before shutdown.
type Coordinator struct {
	pauses   Repository
	outbound OutboundRepository
	logger   logger.Logger
	clock    func() time.Time
}

// New builds an OperationCoordinator.
func New(pauses Repository, outbound OutboundRepository, log logger.Logger) *Coordinator {
	if log == nil {
		log = &logger.NoopLogger{}
	}
	return &Coordinator{pauses: pauses, outbound: outbound, logger: log, clock: time.Now}
}

// PauseAllOngoingTasks atomically sets {IsPaused=true, PauseReason=reason,
// LastPausedBy=userID, LastPausedAt=now} on the persisted slot. Returns
// true if a slot exists for moderatorID, false otherwise (no slot is
// created here — a slot comes into existence the first time a moderator's
// session is created). If the slot is already paused with a different
// reason, the reason is OVERWRITTEN — last-writer-wins, by design:
// higher-precedence reasons are expected to be imposed last by callers.
func (c *Coordinator) PauseAllOngoingTasks(ctx context.Context, moderatorID, userID, reason string) (bool, error) {
	_, existed, err := c.pauses.Get(ctx, moderatorID)
	if err != nil {
		return false, err
	}
	if !existed {
		return false, nil
	}

	state := PauseState{
		ModeratorID:  moderatorID,
		IsPaused:     true,
		PauseReason:  reason,
		LastPausedBy: userID,
		LastPausedAt: c.clock(),
	}
	if err := c.pauses.Save(ctx, state); err != nil {
		return false, err
	}

	c.logger.InfoWithFields("moderator paused", logger.Fields{
		"moderator_id": moderatorID,
		"reason":       reason,
		"paused_by":    userID,
	})
	return true, nil
}

// ResumeTasksPausedForReason clears the pause iff PauseReason == reason
// (exact string equality). Returns true on clear, false if the slot is not
// paused or the reason does not match. This is the mechanism enforcing
// tier discipline: a lower tier cannot unlock a higher tier because the
// reason string will not match.
func (c *Coordinator) ResumeTasksPausedForReason(ctx context.Context, moderatorID, reason string) (bool, error) {
	state, ok, err := c.pauses.Get(ctx, moderatorID)
	if err != nil {
		return false, err
	}
	if !ok || !state.IsPaused || state.PauseReason != reason {
		return false, nil
	}

	state.IsPaused = false
	state.PauseReason = ""
	if err := c.pauses.Save(ctx, state); err != nil {
		return false, err
	}

	c.logger.InfoWithFields("moderator resumed", logger.Fields{
		"moderator_id": moderatorID,
		"reason":       reason,
	})
	return true, nil
}

// EnsureSlot creates an unpaused PauseState row for moderatorID if none
// exists yet. Called once when a moderator's browser session is first
// created; idempotent.
func (c *Coordinator) EnsureSlot(ctx context.Context, moderatorID string) error {
	_, ok, err := c.pauses.Get(ctx, moderatorID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return c.pauses.Save(ctx, PauseState{ModeratorID: moderatorID})
}

// CurrentPause returns the moderator's persisted pause state, read fresh
// from the repository — never cached in-process.
func (c *Coordinator) CurrentPause(ctx context.Context, moderatorID string) (PauseState, bool, error) {
	return c.pauses.Get(ctx, moderatorID)
}

// HasOngoingOperations reports whether at least one OutboundMessageRecord
// with status "sending" exists for moderatorID.
func (c *Coordinator) HasOngoingOperations(ctx context.Context, moderatorID string) (bool, error) {
	return c.outbound.HasStatus(ctx, moderatorID, OutboundSending)
}

// BeginOperation records a new outbound message in the "sending" state,
// marking it as in-flight for WaitForCurrentOperationToFinish/drain
// purposes. The orchestrator calls this before navigation starts.
func (c *Coordinator) BeginOperation(ctx context.Context, moderatorID, phoneNumber string) (string, error) {
	return c.outbound.Record(ctx, moderatorID, phoneNumber, OutboundSending)
}

// FinishOperation transitions an in-flight record to its terminal status.
func (c *Coordinator) FinishOperation(ctx context.Context, id string, status OutboundStatus) error {
	return c.outbound.UpdateStatus(ctx, id, status)
}

// WaitForCurrentOperationToFinish polls HasOngoingOperations every
// checkInterval; returns true when none remain, false on timeout. Returns
// true immediately if no sending operations exist at call time.
func (c *Coordinator) WaitForCurrentOperationToFinish(ctx context.Context, moderatorID string, maxWait, checkInterval time.Duration) (bool, error) {
	deadline := time.Now().Add(maxWait)

	for {
		has, err := c.HasOngoingOperations(ctx, moderatorID)
		if err != nil {
			return false, err
		}
		if !has {
			return true, nil
		}
		if time.Now().After(deadline) {
			return false, nil
		}

		select {
		case <-ctx.Done():
			return false, nil
		case <-time.After(checkInterval):
		}
	}
}
