package messaging

import (
	"context"

	"clinicwa/internal/core/netcheck"
	"clinicwa/pkg/logger"
)

// CheckConnectivityResponse surfaces the tiered OperationResult over the
// façade for a standalone connectivity probe.
type CheckConnectivityResponse struct {
	State     string `json:"state"`
	Connected bool   `json:"connected"`
	Message   string `json:"message"`
}

// CheckConnectivityUseCase implements CheckInternetConnectivityDetailed.
// Unlike CheckWhatsAppNumber/SendMessageWithIconType it talks directly to
// the NetworkService rather than the orchestrator: connectivity is not
// scoped to a moderator's BrowserSession.
type CheckConnectivityUseCase struct {
	network *netcheck.Service
	logger  logger.Logger
}

// NewCheckConnectivityUseCase builds the connectivity-probe façade operation.
func NewCheckConnectivityUseCase(network *netcheck.Service, log logger.Logger) *CheckConnectivityUseCase {
	return &CheckConnectivityUseCase{network: network, logger: log}
}

// Execute runs CheckInternetConnectivityDetailed.
func (uc *CheckConnectivityUseCase) Execute(ctx context.Context) *CheckConnectivityResponse {
	result := uc.network.CheckInternetConnectivityDetailed(ctx)

	uc.logger.InfoWithFields("connectivity check completed", logger.Fields{
		"state": result.State.String(),
	})

	return &CheckConnectivityResponse{
		State:     result.State.String(),
		Connected: result.IsSuccess() && result.Data,
		Message:   result.Message,
	}
}
