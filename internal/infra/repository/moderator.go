package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	"clinicwa/internal/domain/moderator"
	"clinicwa/internal/infra/database"
	"clinicwa/pkg/logger"
)

// ModeratorRepository implements moderator.Repository using Bun ORM.
type ModeratorRepository struct {
	db     *bun.DB
	logger logger.Logger
}

// NewModeratorRepository builds a bun-backed moderator.Repository.
func NewModeratorRepository(db *bun.DB, logger logger.Logger) moderator.Repository {
	return &ModeratorRepository{db: db, logger: logger}
}

func (r *ModeratorRepository) Create(ctx context.Context, m *moderator.Moderator) error {
	model := database.ToModeratorModel(m)

	_, err := r.db.NewInsert().Model(model).Exec(ctx)
	if err != nil {
		r.logger.ErrorWithError("failed to create moderator", err, logger.Fields{
			"moderator_id": m.ID().String(),
			"name":         m.Name(),
		})
		return fmt.Errorf("failed to create moderator: %w", err)
	}

	r.logger.InfoWithFields("moderator created", logger.Fields{
		"moderator_id": m.ID().String(),
		"name":         m.Name(),
	})

	return nil
}

func (r *ModeratorRepository) GetByID(ctx context.Context, id moderator.ModeratorID) (*moderator.Moderator, error) {
	var model database.ModeratorModel

	err := r.db.NewSelect().Model(&model).Where("id = ?", id.String()).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, moderator.ErrModeratorNotFound
		}
		r.logger.ErrorWithError("failed to get moderator by ID", err, logger.Fields{"moderator_id": id.String()})
		return nil, fmt.Errorf("failed to get moderator by ID: %w", err)
	}

	m, err := database.FromModeratorModel(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to convert moderator model: %w", err)
	}

	return m, nil
}

func (r *ModeratorRepository) GetByName(ctx context.Context, name string) (*moderator.Moderator, error) {
	var model database.ModeratorModel

	err := r.db.NewSelect().Model(&model).Where("name = ?", name).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, moderator.ErrModeratorNotFound
		}
		r.logger.ErrorWithError("failed to get moderator by name", err, logger.Fields{"name": name})
		return nil, fmt.Errorf("failed to get moderator by name: %w", err)
	}

	m, err := database.FromModeratorModel(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to convert moderator model: %w", err)
	}

	return m, nil
}

func (r *ModeratorRepository) List(ctx context.Context, limit, offset int) ([]*moderator.Moderator, int, error) {
	var models []database.ModeratorModel

	err := r.db.NewSelect().
		Model(&models).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		r.logger.ErrorWithError("failed to list moderators", err, logger.Fields{"limit": limit, "offset": offset})
		return nil, 0, fmt.Errorf("failed to list moderators: %w", err)
	}

	total, err := r.db.NewSelect().Model((*database.ModeratorModel)(nil)).Count(ctx)
	if err != nil {
		r.logger.ErrorWithError("failed to count moderators", err, nil)
		return nil, 0, fmt.Errorf("failed to count moderators: %w", err)
	}

	moderators := make([]*moderator.Moderator, 0, len(models))
	for _, model := range models {
		m, err := database.FromModeratorModel(&model)
		if err != nil {
			r.logger.ErrorWithError("failed to convert moderator model", err, logger.Fields{"moderator_id": model.ID})
			continue
		}
		moderators = append(moderators, m)
	}

	return moderators, total, nil
}

func (r *ModeratorRepository) Update(ctx context.Context, m *moderator.Moderator) error {
	model := database.ToModeratorModel(m)

	result, err := r.db.NewUpdate().Model(model).Where("id = ?", m.ID().String()).Exec(ctx)
	if err != nil {
		r.logger.ErrorWithError("failed to update moderator", err, logger.Fields{"moderator_id": m.ID().String()})
		return fmt.Errorf("failed to update moderator: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return moderator.ErrModeratorNotFound
	}

	r.logger.InfoWithFields("moderator updated", logger.Fields{"moderator_id": m.ID().String(), "name": m.Name()})
	return nil
}

func (r *ModeratorRepository) Delete(ctx context.Context, id moderator.ModeratorID) error {
	result, err := r.db.NewDelete().Model((*database.ModeratorModel)(nil)).Where("id = ?", id.String()).Exec(ctx)
	if err != nil {
		r.logger.ErrorWithError("failed to delete moderator", err, logger.Fields{"moderator_id": id.String()})
		return fmt.Errorf("failed to delete moderator: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return moderator.ErrModeratorNotFound
	}

	r.logger.InfoWithFields("moderator deleted", logger.Fields{"moderator_id": id.String()})
	return nil
}

func (r *ModeratorRepository) GetActiveCount(ctx context.Context) (int, error) {
	count, err := r.db.NewSelect().Model((*database.ModeratorModel)(nil)).Where("is_active = ?", true).Count(ctx)
	if err != nil {
		r.logger.ErrorWithError("failed to get active moderator count", err, nil)
		return 0, fmt.Errorf("failed to get active moderator count: %w", err)
	}
	return count, nil
}

func (r *ModeratorRepository) Exists(ctx context.Context, id moderator.ModeratorID) (bool, error) {
	count, err := r.db.NewSelect().Model((*database.ModeratorModel)(nil)).Where("id = ?", id.String()).Count(ctx)
	if err != nil {
		r.logger.ErrorWithError("failed to check moderator existence", err, logger.Fields{"moderator_id": id.String()})
		return false, fmt.Errorf("failed to check moderator existence: %w", err)
	}
	return count > 0, nil
}

func (r *ModeratorRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	count, err := r.db.NewSelect().Model((*database.ModeratorModel)(nil)).Where("name = ?", name).Count(ctx)
	if err != nil {
		r.logger.ErrorWithError("failed to check moderator existence by name", err, logger.Fields{"name": name})
		return false, fmt.Errorf("failed to check moderator existence by name: %w", err)
	}
	return count > 0, nil
}
