package container

import (
	"context"

	"clinicwa/internal/http/server"
	"clinicwa/internal/infra/config"
	messagingUC "clinicwa/internal/usecases/messaging"
	moderatorUC "clinicwa/internal/usecases/moderator"
	"clinicwa/pkg/logger"
)

// Container defines the interface for application containers
type Container interface {
	GetLogger() logger.Logger
	GetConfig() *config.Config
	Health() error
	Close() error
	IsInitialized() bool
}

// UseCaseContainer defines the interface for use case management
type UseCaseContainer interface {
	GetModeratorUseCases() ModeratorUseCases
	GetMessagingUseCases() MessagingUseCases
}

// HTTPContainer defines the interface for HTTP layer management
type HTTPContainer interface {
	GetServerManager() *server.ServerManager
	GetServerInfo() server.ServerInfo
	StartServer(ctx context.Context) error
}

// ModeratorUseCases groups all moderator-registry use cases
type ModeratorUseCases struct {
	Create   *moderatorUC.CreateUseCase
	List     *moderatorUC.ListUseCase
	Delete   *moderatorUC.DeleteUseCase
	Resolve  *moderatorUC.ResolveUseCase
	SetProxy *moderatorUC.SetProxyUseCase
}

// MessagingUseCases groups the public send/validate façade use cases
type MessagingUseCases struct {
	SendMessage       *messagingUC.SendMessageUseCase
	CheckNumber       *messagingUC.CheckNumberUseCase
	DisposeSession    *messagingUC.DisposeSessionUseCase
	CheckConnectivity *messagingUC.CheckConnectivityUseCase
}
