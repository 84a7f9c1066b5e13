package moderator

import (
	"context"

	"clinicwa/internal/domain/moderator"
	"clinicwa/pkg/logger"
	"clinicwa/pkg/validator"
)

// CreateUseCase registers a new moderator.
type CreateUseCase struct {
	repo      moderator.Repository
	logger    logger.Logger
	validator validator.Validator
}

// NewCreateUseCase creates a new moderator-registration use case.
func NewCreateUseCase(repo moderator.Repository, logger logger.Logger, validator validator.Validator) *CreateUseCase {
	return &CreateUseCase{repo: repo, logger: logger, validator: validator}
}

// CreateRequest is the request to register a new moderator.
type CreateRequest struct {
	Name string `json:"name" validate:"required,min=3,max=50"`
}

// CreateResponse carries the newly registered moderator.
type CreateResponse struct {
	Moderator *moderator.Moderator `json:"moderator"`
}

// Execute registers a new moderator.
func (uc *CreateUseCase) Execute(ctx context.Context, req CreateRequest) (*CreateResponse, error) {
	if err := uc.validator.Validate(req); err != nil {
		uc.logger.ErrorWithError("validation failed for create moderator", err, logger.Fields{
			"name": req.Name,
		})
		return nil, err
	}

	existing, err := uc.repo.GetByName(ctx, req.Name)
	if err != nil && err != moderator.ErrModeratorNotFound {
		uc.logger.ErrorWithError("failed to check existing moderator", err, logger.Fields{
			"name": req.Name,
		})
		return nil, err
	}

	if existing != nil {
		uc.logger.WarnWithFields("moderator with name already exists", logger.Fields{
			"name":         req.Name,
			"moderator_id": existing.ID().String(),
		})
		return nil, moderator.ErrModeratorAlreadyExists
	}

	m := moderator.NewModerator(req.Name)

	if err := m.Validate(); err != nil {
		uc.logger.ErrorWithError("moderator validation failed", err, logger.Fields{
			"name":         req.Name,
			"moderator_id": m.ID().String(),
		})
		return nil, err
	}

	if err := uc.repo.Create(ctx, m); err != nil {
		uc.logger.ErrorWithError("failed to create moderator", err, logger.Fields{
			"name":         req.Name,
			"moderator_id": m.ID().String(),
		})
		return nil, err
	}

	uc.logger.InfoWithFields("moderator created successfully", logger.Fields{
		"name":         m.Name(),
		"moderator_id": m.ID().String(),
	})

	return &CreateResponse{Moderator: m}, nil
}
