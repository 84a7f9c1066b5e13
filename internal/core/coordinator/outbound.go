package coordinator

import "context"

// OutboundStatus is the lifecycle status of an outbound message record.
type OutboundStatus string

const (
	OutboundQueued   OutboundStatus = "queued"
	OutboundSending  OutboundStatus = "sending"
	OutboundSent     OutboundStatus = "sent"
	OutboundFailed   OutboundStatus = "failed"
	OutboundRetrying OutboundStatus = "retrying"
)

// OutboundRepository is consulted by HasOngoingOperations/drain. Only the
// send orchestrator mutates a record's status away from "sending".
type OutboundRepository interface {
	HasStatus(ctx context.Context, moderatorID string, status OutboundStatus) (bool, error)
	// Record creates a new outbound message row, returning its ID.
	Record(ctx context.Context, moderatorID, phoneNumber string, status OutboundStatus) (string, error)
	// UpdateStatus transitions an existing record to a new status.
	UpdateStatus(ctx context.Context, id string, status OutboundStatus) error
}
