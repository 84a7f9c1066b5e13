package container

import (
	"fmt"

	"clinicwa/internal/infra/container"
	messagingUC "clinicwa/internal/usecases/messaging"
	moderatorUC "clinicwa/internal/usecases/moderator"
	"clinicwa/pkg/logger"
)

// useCaseContainer implements UseCaseContainer interface
type useCaseContainer struct {
	moderatorUseCases ModeratorUseCases
	messagingUseCases MessagingUseCases
	logger            logger.Logger
	isInitialized     bool
}

// NewUseCaseContainer creates a new use case container
func NewUseCaseContainer(infraContainer *container.Container) (UseCaseContainer, error) {
	uc := &useCaseContainer{
		logger: infraContainer.Logger,
	}

	if err := uc.initialize(infraContainer); err != nil {
		return nil, fmt.Errorf("failed to initialize use case container: %w", err)
	}

	return uc, nil
}

// initialize sets up all use cases
func (uc *useCaseContainer) initialize(infraContainer *container.Container) error {
	logger := infraContainer.Logger
	validator := infraContainer.Validator

	uc.moderatorUseCases = ModeratorUseCases{
		Create: moderatorUC.NewCreateUseCase(
			infraContainer.ModeratorRepo,
			logger,
			validator,
		),
		List: moderatorUC.NewListUseCase(
			infraContainer.ModeratorRepo,
			logger,
		),
		Delete: moderatorUC.NewDeleteUseCase(
			infraContainer.ModeratorRepo,
			infraContainer.Orchestrator,
			logger,
		),
		Resolve: moderatorUC.NewResolveUseCase(
			infraContainer.ModeratorRepo,
			logger,
		),
		SetProxy: moderatorUC.NewSetProxyUseCase(
			infraContainer.ModeratorRepo,
			logger,
			validator,
		),
	}

	uc.messagingUseCases = MessagingUseCases{
		SendMessage: messagingUC.NewSendMessageUseCase(
			infraContainer.Orchestrator,
			logger,
			validator,
		),
		CheckNumber: messagingUC.NewCheckNumberUseCase(
			infraContainer.Orchestrator,
			logger,
			validator,
		),
		DisposeSession: messagingUC.NewDisposeSessionUseCase(
			infraContainer.Orchestrator,
			logger,
		),
		CheckConnectivity: messagingUC.NewCheckConnectivityUseCase(
			infraContainer.NetworkService,
			logger,
		),
	}

	uc.isInitialized = true
	logger.Info("Use case container initialized successfully")
	return nil
}

// GetModeratorUseCases returns moderator-registry use cases
func (uc *useCaseContainer) GetModeratorUseCases() ModeratorUseCases {
	return uc.moderatorUseCases
}

// GetMessagingUseCases returns the messaging façade use cases
func (uc *useCaseContainer) GetMessagingUseCases() MessagingUseCases {
	return uc.messagingUseCases
}
