package container

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/uptrace/bun"

	"clinicwa/internal/core/browser"
	"clinicwa/internal/core/coordinator"
	"clinicwa/internal/core/netcheck"
	"clinicwa/internal/core/orchestrator"
	"clinicwa/internal/core/retry"
	"clinicwa/internal/core/sessionmgr"
	"clinicwa/internal/core/ui"
	"clinicwa/internal/domain/moderator"
	"clinicwa/internal/infra/config"
	"clinicwa/internal/infra/database"
	"clinicwa/internal/infra/database/migrations"
	infraLogger "clinicwa/internal/infra/logger"
	"clinicwa/internal/infra/repository"
	"clinicwa/pkg/logger"
	"clinicwa/pkg/validator"
)

// Container holds all infrastructure dependencies
type Container struct {
	// Configuration
	Config *config.Config

	// Core infrastructure
	Logger    logger.Logger
	Validator validator.Validator
	DB        *bun.DB

	// Database components
	DBConnection database.Connection
	Migrator     *migrations.Migrator

	// Repositories
	ModeratorRepo moderator.Repository
	PauseRepo     coordinator.Repository
	OutboundRepo  coordinator.OutboundRepository

	// CORE component graph
	RetryService   *retry.Service
	NetworkService *netcheck.Service
	BrowserDriver  browser.Driver
	UIService      *ui.Service
	SessionManager *sessionmgr.Manager
	Coordinator    *coordinator.Coordinator
	Orchestrator   *orchestrator.Orchestrator

	// Internal state
	isInitialized bool
}

// New creates a new infrastructure container
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	if err := container.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}

	return container, nil
}

// initialize sets up all infrastructure components
func (c *Container) initialize() error {
	if err := c.initializeLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.Logger.Info("initializing infrastructure container")

	if err := c.initializeValidator(); err != nil {
		return fmt.Errorf("failed to initialize validator: %w", err)
	}

	if err := c.initializeDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := c.initializeRepositories(); err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	if err := c.initializeCore(); err != nil {
		return fmt.Errorf("failed to initialize CORE components: %w", err)
	}

	c.isInitialized = true
	c.Logger.Info("infrastructure container initialized successfully")

	return nil
}

// initializeLogger sets up the logger
func (c *Container) initializeLogger() error {
	c.Logger = infraLogger.New(&c.Config.Log)
	return nil
}

// initializeValidator sets up the validator
func (c *Container) initializeValidator() error {
	c.Validator = validator.New()
	return nil
}

// initializeDatabase sets up the database connection and migrations
func (c *Container) initializeDatabase() error {
	dbConn, err := database.New(&c.Config.Database, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create database connection: %w", err)
	}

	c.DBConnection = dbConn
	c.DB = dbConn.GetDB()

	c.Migrator = migrations.NewMigrator(c.DB, c.Logger)

	if c.Config.Database.AutoMigrate {
		ctx := context.Background()
		if err := c.Migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	return nil
}

// initializeRepositories sets up all repositories
func (c *Container) initializeRepositories() error {
	c.ModeratorRepo = repository.NewModeratorRepository(c.DB, c.Logger)
	c.PauseRepo = repository.NewPauseStateRepository(c.DB, c.Logger)
	c.OutboundRepo = repository.NewOutboundMessageRepository(c.DB, c.Logger)

	c.Logger.Info("repositories initialized")
	return nil
}

// initializeCore wires the CORE component graph: RetryService,
// NetworkService, the injected BrowserDriver, UIInteractionService,
// SessionManager, OperationCoordinator, and finally the SendOrchestrator
// that binds them all together.
func (c *Container) initializeCore() error {
	coreCfg := c.Config.Core

	c.RetryService = retry.New(retry.Config{
		MaxAttempts: coreCfg.RetryMaxAttempts,
		BaseDelay:   coreCfg.RetryBaseDelay,
		MaxDelay:    coreCfg.RetryMaxDelay,
	}, c.Logger)

	c.NetworkService = netcheck.New(netcheck.Config{
		Hosts:    coreCfg.NetworkProbeHosts,
		Timeout:  coreCfg.NetworkProbeTimeout,
		CacheTTL: coreCfg.NetworkCacheTTL,
	})

	// No concrete headless-browser driver is bound here; see
	// internal/core/browser/browser.go and DESIGN.md for why.
	c.BrowserDriver = browser.NullDriver{}

	terminalIcons := make([]ui.IconKey, 0, len(coreCfg.TerminalDeliveryIcons))
	for _, raw := range coreCfg.TerminalDeliveryIcons {
		terminalIcons = append(terminalIcons, ui.IconKey(raw))
	}
	c.UIService = ui.New(ui.DefaultFamilies(), c.NetworkService, ui.Config{
		TerminalDeliveryIcons: terminalIcons,
	}, c.Logger)

	c.SessionManager = sessionmgr.New(c.launchSession, coreCfg.WhatsAppWebBaseURL, c.Logger)

	c.Coordinator = coordinator.New(c.PauseRepo, c.OutboundRepo, c.Logger)

	c.Orchestrator = orchestrator.New(orchestrator.Config{
		BaseURL:                     coreCfg.WhatsAppWebBaseURL,
		PageLoadTimeout:             coreCfg.PageLoadTimeout,
		SelectorPollInterval:        coreCfg.SelectorPollInterval,
		StatusClassificationTimeout: coreCfg.StatusClassificationTimeout,
		RetryMaxAttempts:            coreCfg.RetryMaxAttempts,
	}, c.SessionManager, c.Coordinator, c.UIService, c.NetworkService, c.RetryService, c.Logger)

	c.Logger.Info("CORE components initialized")
	return nil
}

// launchSession is the SessionManager's lazy-creation factory: it asks the
// injected BrowserDriver for a Session bound to a per-moderator profile
// directory under the configured profile root.
func (c *Container) launchSession(ctx context.Context, moderatorID string) (browser.Session, error) {
	profileDir := filepath.Join(c.Config.Browser.ProfileRootDir, moderatorID)
	return c.BrowserDriver.Launch(ctx, profileDir)
}

// Close gracefully shuts down all infrastructure components
func (c *Container) Close() error {
	if !c.isInitialized {
		return nil
	}

	c.Logger.Info("shutting down infrastructure container")

	if c.DBConnection != nil {
		if err := c.DBConnection.Close(); err != nil {
			c.Logger.ErrorWithError("error closing database connection", err, nil)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	c.Logger.Info("infrastructure container shut down successfully")
	return nil
}

// Health checks the health of all infrastructure components
func (c *Container) Health() error {
	if !c.isInitialized {
		return fmt.Errorf("container not initialized")
	}

	if err := c.DBConnection.Health(); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}

// IsInitialized returns true if the container is initialized
func (c *Container) IsInitialized() bool {
	return c.isInitialized
}

// GetDatabaseStats returns database connection statistics
func (c *Container) GetDatabaseStats() interface{} {
	if c.DB == nil {
		return sql.DBStats{}
	}
	return c.DB.DB.Stats()
}

// ResetDatabase drops and recreates all database tables
func (c *Container) ResetDatabase() error {
	if c.Migrator == nil {
		return fmt.Errorf("migrator not initialized")
	}

	c.Logger.Warn("resetting database")
	ctx := context.Background()
	return c.Migrator.Reset(ctx)
}

// MigrateDatabase runs database migrations
func (c *Container) MigrateDatabase() error {
	if c.Migrator == nil {
		return fmt.Errorf("migrator not initialized")
	}

	c.Logger.Info("running database migrations")
	ctx := context.Background()
	return c.Migrator.Migrate(ctx)
}
