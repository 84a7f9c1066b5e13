package moderator

import (
	"context"
	"fmt"

	"clinicwa/internal/domain/moderator"
	"clinicwa/pkg/logger"
)

// ResolveUseCase resolves a moderator by flexible identifier (ID or name).
type ResolveUseCase struct {
	repo   moderator.Repository
	logger logger.Logger
}

// NewResolveUseCase creates a new moderator-resolution use case.
func NewResolveUseCase(repo moderator.Repository, logger logger.Logger) *ResolveUseCase {
	return &ResolveUseCase{repo: repo, logger: logger}
}

// ResolveRequest is the request to resolve a moderator by identifier.
type ResolveRequest struct {
	Identifier moderator.ModeratorIdentifier `json:"identifier"`
}

// ResolveResponse carries the resolved moderator.
type ResolveResponse struct {
	Moderator      *moderator.Moderator `json:"moderator"`
	IdentifierType string               `json:"identifier_type"`
}

// Execute resolves a moderator by its flexible identifier.
func (uc *ResolveUseCase) Execute(ctx context.Context, req ResolveRequest) (*ResolveResponse, error) {
	if err := req.Identifier.Validate(); err != nil {
		uc.logger.ErrorWithError("invalid moderator identifier", err, logger.Fields{
			"identifier": req.Identifier.String(),
		})
		return nil, err
	}

	uc.logger.InfoWithFields("resolving moderator", logger.Fields{
		"identifier":      req.Identifier.String(),
		"identifier_type": req.Identifier.Type().String(),
	})

	var m *moderator.Moderator
	var err error

	if req.Identifier.IsID() {
		id, convErr := req.Identifier.ToModeratorID()
		if convErr != nil {
			return nil, fmt.Errorf("invalid moderator ID format: %w", convErr)
		}

		m, err = uc.repo.GetByID(ctx, id)
		if err != nil {
			if err == moderator.ErrModeratorNotFound {
				return nil, moderator.ErrModeratorNotFound
			}
			return nil, fmt.Errorf("failed to retrieve moderator by ID: %w", err)
		}
	} else if req.Identifier.IsName() {
		name, convErr := req.Identifier.ToModeratorName()
		if convErr != nil {
			return nil, fmt.Errorf("invalid moderator name format: %w", convErr)
		}

		m, err = uc.repo.GetByName(ctx, name.String())
		if err != nil {
			if err == moderator.ErrModeratorNotFound {
				return nil, moderator.ErrModeratorNotFound
			}
			return nil, fmt.Errorf("failed to retrieve moderator by name: %w", err)
		}
	} else {
		return nil, fmt.Errorf("unsupported identifier type: %s", req.Identifier.Type().String())
	}

	uc.logger.InfoWithFields("moderator resolved successfully", logger.Fields{
		"moderator_id":    m.ID().String(),
		"moderator_name":  m.Name(),
		"identifier":      req.Identifier.String(),
		"identifier_type": req.Identifier.Type().String(),
	})

	return &ResolveResponse{
		Moderator:      m,
		IdentifierType: req.Identifier.Type().String(),
	}, nil
}
