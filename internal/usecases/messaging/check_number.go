package messaging

import (
	"context"

	"clinicwa/internal/core/orchestrator"
	"clinicwa/pkg/logger"
	"clinicwa/pkg/validator"
)

// CheckNumberRequest is the inbound request to validate whether a phone
// number is reachable on WhatsApp.
type CheckNumberRequest struct {
	ModeratorID string `json:"moderator_id" validate:"required"`
	CountryCode string `json:"country_code" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// CheckNumberResponse surfaces the tiered OperationResult over the façade.
type CheckNumberResponse struct {
	ModeratorID string `json:"moderator_id"`
	State       string `json:"state"`
	Reachable   bool   `json:"reachable"`
	Message     string `json:"message"`
}

// CheckNumberUseCase implements CheckWhatsAppNumber.
type CheckNumberUseCase struct {
	orchestrator *orchestrator.Orchestrator
	logger       logger.Logger
	validator    validator.Validator
}

// NewCheckNumberUseCase builds the check-number façade operation.
func NewCheckNumberUseCase(orch *orchestrator.Orchestrator, log logger.Logger, v validator.Validator) *CheckNumberUseCase {
	return &CheckNumberUseCase{orchestrator: orch, logger: log, validator: v}
}

// Execute runs CheckWhatsAppNumber: validates the request then drives the
// orchestrator's reachability check. Unlike SendMessage this does not hold
// the per-moderator send mutex — a reachability probe may run concurrently
// with other reachability probes for the same moderator.
func (uc *CheckNumberUseCase) Execute(ctx context.Context, req CheckNumberRequest) (*CheckNumberResponse, error) {
	if err := uc.validator.Validate(req); err != nil {
		uc.logger.ErrorWithError("validation failed for check number", err, logger.Fields{
			"moderator_id": req.ModeratorID,
		})
		return nil, err
	}

	result := uc.orchestrator.CheckWhatsAppNumber(ctx, req.ModeratorID, req.CountryCode, req.PhoneNumber)

	uc.logger.InfoWithFields("check number completed", logger.Fields{
		"moderator_id": req.ModeratorID,
		"state":        result.State.String(),
	})

	return &CheckNumberResponse{
		ModeratorID: req.ModeratorID,
		State:       result.State.String(),
		Reachable:   result.IsSuccess() && result.Data,
		Message:     result.Message,
	}, nil
}
