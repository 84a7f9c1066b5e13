// Package messaging implements the public façade: SendMessageWithIconType,
// CheckWhatsAppNumber, DisposeBrowserSession. Each is a thin dispatch
// binding the coordinator gates, the send orchestrator, and the session
// manager.
package messaging

import (
	"context"
	"strings"
	"sync"

	"clinicwa/internal/core/orchestrator"
	"clinicwa/pkg/logger"
	"clinicwa/pkg/validator"
)

// SendMessageRequest is the inbound request to send a templated text
// message to a patient through a moderator's WhatsApp-Web session.
type SendMessageRequest struct {
	ModeratorID string `json:"moderator_id" validate:"required"`
	CountryCode string `json:"country_code" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Message     string `json:"message" validate:"required,max=4096"`
}

// SendMessageResponse surfaces the tiered OperationResult over the façade.
type SendMessageResponse struct {
	ModeratorID string `json:"moderator_id"`
	State       string `json:"state"`
	IconKey     string `json:"icon_key,omitempty"`
	Message     string `json:"message"`
}

// SendMessageUseCase implements SendMessageWithIconType.
type SendMessageUseCase struct {
	orchestrator *orchestrator.Orchestrator
	logger       logger.Logger
	validator    validator.Validator

	// perModerator serializes orchestrator operations: at-most-one
	// in-flight operation per BrowserSession.
	perModerator sync.Map // moderatorID -> *sync.Mutex
}

// NewSendMessageUseCase builds the send-message façade operation.
func NewSendMessageUseCase(orch *orchestrator.Orchestrator, log logger.Logger, v validator.Validator) *SendMessageUseCase {
	return &SendMessageUseCase{orchestrator: orch, logger: log, validator: v}
}

func (uc *SendMessageUseCase) lockFor(moderatorID string) *sync.Mutex {
	lock, _ := uc.perModerator.LoadOrStore(moderatorID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Execute runs SendMessageWithIconType: validates the request, acquires the
// per-moderator mutual-exclusion token, then drives the orchestrator.
func (uc *SendMessageUseCase) Execute(ctx context.Context, req SendMessageRequest) (*SendMessageResponse, error) {
	if err := uc.validator.Validate(req); err != nil {
		uc.logger.ErrorWithError("validation failed for send message", err, logger.Fields{
			"moderator_id": req.ModeratorID,
		})
		return nil, err
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, validator.ValidationError{Field: "message", Tag: "required", Message: "message must not be empty"}
	}

	lock := uc.lockFor(req.ModeratorID)
	lock.Lock()
	defer lock.Unlock()

	result := uc.orchestrator.SendMessageWithIconType(ctx, req.ModeratorID, req.CountryCode, req.PhoneNumber, req.Message)

	uc.logger.InfoWithFields("send message completed", logger.Fields{
		"moderator_id": req.ModeratorID,
		"state":        result.State.String(),
	})

	return &SendMessageResponse{
		ModeratorID: req.ModeratorID,
		State:       result.State.String(),
		IconKey:     result.Data,
		Message:     result.Message,
	}, nil
}
