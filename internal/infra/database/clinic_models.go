package database

import (
	"time"

	"github.com/uptrace/bun"
)

// PauseStateModel is the persisted row backing coordinator.PauseState — one
// row per moderator slot, read fresh on every coordinator query (never
// cached in-process).
type PauseStateModel struct {
	bun.BaseModel `bun:"table:clinicwa_pause_states"`

	ModeratorID  string    `bun:"moderator_id,pk,type:varchar(64)" json:"moderator_id"`
	IsPaused     bool      `bun:"is_paused,notnull,default:false" json:"is_paused"`
	PauseReason  string    `bun:"pause_reason,type:text" json:"pause_reason,omitempty"`
	LastPausedBy string    `bun:"last_paused_by,type:varchar(64)" json:"last_paused_by,omitempty"`
	LastPausedAt time.Time `bun:"last_paused_at,type:datetime" json:"last_paused_at,omitempty"`
}

// OutboundMessageModel is the persisted row backing one send/validate
// attempt, used by the coordinator to detect in-flight operations during a
// graceful-shutdown drain.
type OutboundMessageModel struct {
	bun.BaseModel `bun:"table:clinicwa_outbound_messages"`

	ID          string    `bun:"id,pk,type:varchar(36)" json:"id"`
	ModeratorID string    `bun:"moderator_id,notnull,type:varchar(64)" json:"moderator_id"`
	PhoneNumber string    `bun:"phone_number,notnull,type:varchar(32)" json:"phone_number"`
	Status      string    `bun:"status,notnull,type:varchar(20),default:'queued'" json:"status"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp,type:datetime" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp,type:datetime" json:"updated_at"`
}
