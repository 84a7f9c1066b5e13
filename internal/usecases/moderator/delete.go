package moderator

import (
	"context"
	"fmt"

	"clinicwa/internal/core/orchestrator"
	"clinicwa/internal/domain/moderator"
	"clinicwa/pkg/logger"
)

// DeleteUseCase removes a moderator registration, tearing down any live
// BrowserSession first.
type DeleteUseCase struct {
	repo         moderator.Repository
	orchestrator *orchestrator.Orchestrator
	logger       logger.Logger
}

// NewDeleteUseCase creates a new moderator-deletion use case.
func NewDeleteUseCase(repo moderator.Repository, orch *orchestrator.Orchestrator, logger logger.Logger) *DeleteUseCase {
	return &DeleteUseCase{repo: repo, orchestrator: orch, logger: logger}
}

// DeleteRequest is the request to delete a moderator.
type DeleteRequest struct {
	ModeratorID moderator.ModeratorID `json:"moderator_id"`
}

// DeleteResponse confirms the deletion.
type DeleteResponse struct {
	ModeratorID moderator.ModeratorID `json:"moderator_id"`
	Message     string                `json:"message"`
}

// Execute deletes a moderator, disposing of its BrowserSession first.
func (uc *DeleteUseCase) Execute(ctx context.Context, req DeleteRequest) (*DeleteResponse, error) {
	m, err := uc.repo.GetByID(ctx, req.ModeratorID)
	if err != nil {
		uc.logger.ErrorWithError("failed to get moderator for deletion", err, logger.Fields{
			"moderator_id": req.ModeratorID.String(),
		})
		return nil, err
	}

	if uc.orchestrator != nil {
		if err := uc.orchestrator.DisposeBrowserSession(ctx, m.ID().String()); err != nil {
			uc.logger.WarnWithFields("failed to dispose browser session before deletion", logger.Fields{
				"moderator_id": m.ID().String(),
				"error":        err.Error(),
			})
		}
	}

	if err := uc.repo.Delete(ctx, req.ModeratorID); err != nil {
		uc.logger.ErrorWithError("failed to delete moderator", err, logger.Fields{
			"moderator_id": req.ModeratorID.String(),
		})
		return nil, err
	}

	uc.logger.InfoWithFields("moderator deleted successfully", logger.Fields{
		"moderator_id": req.ModeratorID.String(),
		"name":         m.Name(),
	})

	return &DeleteResponse{
		ModeratorID: req.ModeratorID,
		Message:     "moderator deleted successfully",
	}, nil
}

// DeleteAllRequest requests deletion of every moderator (e.g. test teardown).
type DeleteAllRequest struct{}

// DeleteAllResponse summarizes a bulk deletion.
type DeleteAllResponse struct {
	DeletedCount int      `json:"deleted_count"`
	FailedCount  int      `json:"failed_count"`
	Errors       []string `json:"errors,omitempty"`
	Message      string   `json:"message"`
}

// ExecuteDeleteAll deletes every registered moderator.
func (uc *DeleteUseCase) ExecuteDeleteAll(ctx context.Context) (*DeleteAllResponse, error) {
	moderators, _, err := uc.repo.List(ctx, 1000, 0)
	if err != nil {
		uc.logger.ErrorWithError("failed to list moderators for deletion", err, nil)
		return nil, err
	}

	response := &DeleteAllResponse{}
	var errs []string

	for _, m := range moderators {
		_, err := uc.Execute(ctx, DeleteRequest{ModeratorID: m.ID()})
		if err != nil {
			response.FailedCount++
			errs = append(errs, fmt.Sprintf("failed to delete moderator %s: %v", m.ID().String(), err))
			uc.logger.ErrorWithError("failed to delete moderator in bulk operation", err, logger.Fields{
				"moderator_id": m.ID().String(),
			})
		} else {
			response.DeletedCount++
		}
	}

	response.Errors = errs
	if response.FailedCount == 0 {
		response.Message = fmt.Sprintf("all %d moderators deleted successfully", response.DeletedCount)
	} else {
		response.Message = fmt.Sprintf("deleted %d moderators, failed to delete %d", response.DeletedCount, response.FailedCount)
	}

	uc.logger.InfoWithFields("bulk moderator deletion completed", logger.Fields{
		"deleted_count": response.DeletedCount,
		"failed_count":  response.FailedCount,
	})

	return response, nil
}
