package moderator

import (
	"context"

	"clinicwa/internal/domain/moderator"
	"clinicwa/pkg/logger"
)

// ListUseCase lists registered moderators.
type ListUseCase struct {
	repo   moderator.Repository
	logger logger.Logger
}

// NewListUseCase creates a new moderator-listing use case.
func NewListUseCase(repo moderator.Repository, logger logger.Logger) *ListUseCase {
	return &ListUseCase{repo: repo, logger: logger}
}

// ListRequest is the request to list moderators with pagination.
type ListRequest struct {
	Limit  int `json:"limit" validate:"min=1,max=100"`
	Offset int `json:"offset" validate:"min=0"`
}

// ListResponse carries a page of moderators.
type ListResponse struct {
	Moderators []*moderator.Moderator `json:"moderators"`
	Total      int                    `json:"total"`
	Limit      int                    `json:"limit"`
	Offset     int                    `json:"offset"`
}

// Execute lists moderators with pagination.
func (uc *ListUseCase) Execute(ctx context.Context, req ListRequest) (*ListResponse, error) {
	if req.Limit <= 0 {
		req.Limit = 10
	}
	if req.Limit > 100 {
		req.Limit = 100
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	moderators, total, err := uc.repo.List(ctx, req.Limit, req.Offset)
	if err != nil {
		uc.logger.ErrorWithError("failed to list moderators", err, logger.Fields{
			"limit":  req.Limit,
			"offset": req.Offset,
		})
		return nil, err
	}

	uc.logger.InfoWithFields("moderators listed successfully", logger.Fields{
		"count":  len(moderators),
		"total":  total,
		"limit":  req.Limit,
		"offset": req.Offset,
	})

	return &ListResponse{
		Moderators: moderators,
		Total:      total,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}, nil
}

// GetActiveCountRequest requests the count of active moderators.
type GetActiveCountRequest struct{}

// GetActiveCountResponse carries the active moderator count.
type GetActiveCountResponse struct {
	Count int `json:"count"`
}

// ExecuteGetActiveCount returns the number of currently active moderators.
func (uc *ListUseCase) ExecuteGetActiveCount(ctx context.Context, req GetActiveCountRequest) (*GetActiveCountResponse, error) {
	count, err := uc.repo.GetActiveCount(ctx)
	if err != nil {
		uc.logger.ErrorWithError("failed to get active moderator count", err, nil)
		return nil, err
	}

	uc.logger.InfoWithFields("active moderator count retrieved", logger.Fields{
		"count": count,
	})

	return &GetActiveCountResponse{Count: count}, nil
}
