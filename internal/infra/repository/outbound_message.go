package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"clinicwa/internal/core/coordinator"
	"clinicwa/internal/infra/database"
	"clinicwa/pkg/logger"
)

// OutboundMessageRepository implements coordinator.OutboundRepository using
// Bun ORM, following ModeratorRepository's query conventions.
type OutboundMessageRepository struct {
	db     *bun.DB
	logger logger.Logger
}

// NewOutboundMessageRepository builds a Bun-backed coordinator.OutboundRepository.
func NewOutboundMessageRepository(db *bun.DB, log logger.Logger) coordinator.OutboundRepository {
	return &OutboundMessageRepository{db: db, logger: log}
}

// HasStatus reports whether at least one outbound message record with the
// given status exists for moderatorID.
func (r *OutboundMessageRepository) HasStatus(ctx context.Context, moderatorID string, status coordinator.OutboundStatus) (bool, error) {
	count, err := r.db.NewSelect().
		Model((*database.OutboundMessageModel)(nil)).
		Where("moderator_id = ?", moderatorID).
		Where("status = ?", string(status)).
		Count(ctx)

	if err != nil {
		r.logger.ErrorWithError("failed to check outbound message status", err, logger.Fields{
			"moderator_id": moderatorID,
			"status":       string(status),
		})
		return false, fmt.Errorf("failed to check outbound message status: %w", err)
	}

	return count > 0, nil
}

// Record creates a new outbound message row in the given status, used by
// the orchestrator to mark an operation as in-flight before it starts.
func (r *OutboundMessageRepository) Record(ctx context.Context, moderatorID, phoneNumber string, status coordinator.OutboundStatus) (string, error) {
	id := uuid.New().String()
	now := time.Now()
	model := &database.OutboundMessageModel{
		ID:          id,
		ModeratorID: moderatorID,
		PhoneNumber: phoneNumber,
		Status:      string(status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.db.NewInsert().Model(model).Exec(ctx); err != nil {
		r.logger.ErrorWithError("failed to record outbound message", err, logger.Fields{"moderator_id": moderatorID})
		return "", fmt.Errorf("failed to record outbound message: %w", err)
	}
	return id, nil
}

// UpdateStatus transitions an outbound message record to a new status.
func (r *OutboundMessageRepository) UpdateStatus(ctx context.Context, id string, status coordinator.OutboundStatus) error {
	_, err := r.db.NewUpdate().
		Model((*database.OutboundMessageModel)(nil)).
		Set("status = ?", string(status)).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		r.logger.ErrorWithError("failed to update outbound message status", err, logger.Fields{"id": id, "status": string(status)})
		return fmt.Errorf("failed to update outbound message status: %w", err)
	}
	return nil
}
