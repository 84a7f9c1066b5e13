package messaging

import (
	"context"

	"clinicwa/internal/core/orchestrator"
	"clinicwa/pkg/logger"
)

// DisposeSessionRequest names the moderator whose BrowserSession should be
// torn down (e.g. on logout or moderator deactivation).
type DisposeSessionRequest struct {
	ModeratorID string `json:"moderator_id" validate:"required"`
}

// DisposeSessionUseCase implements DisposeBrowserSession.
type DisposeSessionUseCase struct {
	orchestrator *orchestrator.Orchestrator
	logger       logger.Logger
}

// NewDisposeSessionUseCase builds the dispose-session façade operation.
func NewDisposeSessionUseCase(orch *orchestrator.Orchestrator, log logger.Logger) *DisposeSessionUseCase {
	return &DisposeSessionUseCase{orchestrator: orch, logger: log}
}

// Execute tears down the moderator's live BrowserSession, if any.
func (uc *DisposeSessionUseCase) Execute(ctx context.Context, req DisposeSessionRequest) error {
	if err := uc.orchestrator.DisposeBrowserSession(ctx, req.ModeratorID); err != nil {
		uc.logger.ErrorWithError("failed to dispose browser session", err, logger.Fields{
			"moderator_id": req.ModeratorID,
		})
		return err
	}

	uc.logger.InfoWithFields("browser session disposed", logger.Fields{
		"moderator_id": req.ModeratorID,
	})
	return nil
}
