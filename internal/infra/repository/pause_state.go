package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	"clinicwa/internal/core/coordinator"
	"clinicwa/internal/infra/database"
	"clinicwa/pkg/logger"
)

// PauseStateRepository implements coordinator.Repository using Bun ORM,
// following ModeratorRepository's query conventions.
type PauseStateRepository struct {
	db     *bun.DB
	logger logger.Logger
}

// NewPauseStateRepository builds a Bun-backed coordinator.Repository.
func NewPauseStateRepository(db *bun.DB, log logger.Logger) coordinator.Repository {
	return &PauseStateRepository{db: db, logger: log}
}

// Get reads the persisted pause state for moderatorID. Returns ok=false,
// no error, if no slot exists yet.
func (r *PauseStateRepository) Get(ctx context.Context, moderatorID string) (coordinator.PauseState, bool, error) {
	var model database.PauseStateModel

	err := r.db.NewSelect().
		Model(&model).
		Where("moderator_id = ?", moderatorID).
		Scan(ctx)

	if err != nil {
		if err == sql.ErrNoRows {
			return coordinator.PauseState{}, false, nil
		}
		r.logger.ErrorWithError("failed to get pause state", err, logger.Fields{"moderator_id": moderatorID})
		return coordinator.PauseState{}, false, fmt.Errorf("failed to get pause state: %w", err)
	}

	return coordinator.PauseState{
		ModeratorID:  model.ModeratorID,
		IsPaused:     model.IsPaused,
		PauseReason:  model.PauseReason,
		LastPausedBy: model.LastPausedBy,
		LastPausedAt: model.LastPausedAt,
	}, true, nil
}

// Save upserts the pause state row for state.ModeratorID.
func (r *PauseStateRepository) Save(ctx context.Context, state coordinator.PauseState) error {
	model := &database.PauseStateModel{
		ModeratorID:  state.ModeratorID,
		IsPaused:     state.IsPaused,
		PauseReason:  state.PauseReason,
		LastPausedBy: state.LastPausedBy,
		LastPausedAt: state.LastPausedAt,
	}

	_, err := r.db.NewInsert().
		Model(model).
		On("CONFLICT (moderator_id) DO UPDATE").
		Set("is_paused = EXCLUDED.is_paused").
		Set("pause_reason = EXCLUDED.pause_reason").
		Set("last_paused_by = EXCLUDED.last_paused_by").
		Set("last_paused_at = EXCLUDED.last_paused_at").
		Exec(ctx)

	if err != nil {
		r.logger.ErrorWithError("failed to save pause state", err, logger.Fields{"moderator_id": state.ModeratorID})
		return fmt.Errorf("failed to save pause state: %w", err)
	}

	return nil
}
