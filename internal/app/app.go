package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"clinicwa/internal/app/container"
	"clinicwa/internal/infra/config"
	"clinicwa/pkg/logger"
)

// App represents the main application
type App struct {
	container *container.AppContainer
	logger    logger.Logger
}

// New creates a new application instance
func New(opts ...container.AppOption) (*App, error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create application container with options
	appContainer, err := container.NewAppContainer(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create app container: %w", err)
	}

	return &App{
		container: appContainer,
		logger:    appContainer.GetLogger(),
	}, nil
}

// Start starts the application with graceful shutdown
func (a *App) Start() error {
	a.logger.Info("starting clinic notification service")

	// Start server and wait for shutdown
	return a.startServerAndWaitForShutdown()
}

// Stop stops the application
func (a *App) Stop() error {
	a.logger.Info("stopping clinic notification service")

	if err := a.container.Close(); err != nil {
		return fmt.Errorf("failed to close app container: %w", err)
	}

	a.logger.Info("clinic notification service stopped successfully")
	return nil
}

// Health checks the application health
func (a *App) Health() error {
	return a.container.Health()
}

// GetConfig returns the application configuration
func (a *App) GetConfig() *config.Config {
	return a.container.GetConfig()
}

// GetContainer returns the application container
func (a *App) GetContainer() *container.AppContainer {
	return a.container
}

// GetServerInfo returns information about the HTTP server
func (a *App) GetServerInfo() interface{} {
	return a.container.GetServerInfo()
}

// GetStats returns application statistics
func (a *App) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"server":   a.container.GetServerInfo(),
		"database": a.container.GetDatabaseStats(),
	}
}

// startServerAndWaitForShutdown starts the HTTP server and waits for shutdown signals
func (a *App) startServerAndWaitForShutdown() error {
	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		if err := a.container.StartServer(ctx); err != nil {
			serverErrors <- err
		}
	}()

	a.logger.InfoWithFields("clinic notification service started successfully", logger.Fields{
		"server_address": a.container.GetServerInfo().Address,
	})

	// Wait for shutdown signal or server error
	return a.waitForShutdown(serverErrors, sigChan, cancel)
}

// waitForShutdown waits for either a server error or shutdown signal
func (a *App) waitForShutdown(serverErrors <-chan error, sigChan <-chan os.Signal, cancel context.CancelFunc) error {
	select {
	case err := <-serverErrors:
		a.logger.ErrorWithError("Server error", err, nil)
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		a.logger.InfoWithFields("Shutdown signal received", logger.Fields{
			"signal": sig.String(),
		})
		cancel() // Cancel context to trigger graceful shutdown
		return nil
	}
}
