package migrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"clinicwa/internal/infra/database"
	"clinicwa/pkg/logger"
)

// Migrator handles database migrations
type Migrator struct {
	db     *bun.DB
	logger logger.Logger
}

// NewMigrator creates a new migrator instance
func NewMigrator(db *bun.DB, log logger.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: log,
	}
}

// Migrate runs all database migrations
func (m *Migrator) Migrate(ctx context.Context) error {
	m.logger.Info("starting database migrations")

	models := []interface{}{
		(*database.ModeratorModel)(nil),
		(*database.PauseStateModel)(nil),
		(*database.OutboundMessageModel)(nil),
	}

	for _, model := range models {
		if err := m.createTable(ctx, model); err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	// Create indexes
	if err := m.createIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	// Create triggers for updated_at
	if err := m.createTriggers(ctx); err != nil {
		return fmt.Errorf("failed to create triggers: %w", err)
	}

	// Run schema migrations
	if err := m.runSchemaMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run schema migrations: %w", err)
	}

	m.logger.Info("database migrations completed successfully")
	return nil
}

// createTable creates a table if it doesn't exist
func (m *Migrator) createTable(ctx context.Context, model interface{}) error {
	// Log table creation with simple name extraction
	tableName := tableNameFor(model)

	m.logger.InfoWithFields("creating table", logger.Fields{
		"table": tableName,
	})

	// Use Bun's CreateTable
	query := m.db.NewCreateTable().
		Model(model).
		IfNotExists()

	// Log the SQL query for debugging
	sqlQuery, args := query.AppendQuery(m.db.Formatter(), nil)
	m.logger.DebugWithFields("executing create table query", logger.Fields{
		"table": tableName,
		"sql":   string(sqlQuery),
		"args":  args,
	})

	_, err := query.Exec(ctx)

	if err != nil {
		m.logger.ErrorWithError("failed to create table", err, logger.Fields{
			"table": tableName,
			"sql":   string(sqlQuery),
		})
		return err
	}

	// Table creation completed successfully
	m.logger.DebugWithFields("table creation completed", logger.Fields{
		"table": tableName,
	})

	m.logger.InfoWithFields("table created or verified", logger.Fields{
		"table": tableName,
	})

	return nil
}

// tableNameFor extracts the logical table name for logging purposes.
func tableNameFor(model interface{}) string {
	switch model.(type) {
	case *database.ModeratorModel:
		return "clinicwa_moderators"
	case *database.PauseStateModel:
		return "clinicwa_pause_states"
	case *database.OutboundMessageModel:
		return "clinicwa_outbound_messages"
	default:
		return "unknown"
	}
}

// createIndexes creates database indexes
func (m *Migrator) createIndexes(ctx context.Context) error {
	indexes := []string{
		// Moderator registry table indexes
		"CREATE INDEX IF NOT EXISTS idx_clinicwa_moderators_name ON clinicwa_moderators(name)",
		"CREATE INDEX IF NOT EXISTS idx_clinicwa_moderators_is_active ON clinicwa_moderators(is_active)",
		"CREATE INDEX IF NOT EXISTS idx_clinicwa_moderators_created_at ON clinicwa_moderators(created_at)",

		// Pause state table indexes
		"CREATE INDEX IF NOT EXISTS idx_clinicwa_pause_states_is_paused ON clinicwa_pause_states(is_paused)",

		// Outbound message table indexes
		"CREATE INDEX IF NOT EXISTS idx_clinicwa_outbound_messages_moderator_id ON clinicwa_outbound_messages(moderator_id)",
		"CREATE INDEX IF NOT EXISTS idx_clinicwa_outbound_messages_status ON clinicwa_outbound_messages(status)",
	}

	for _, indexSQL := range indexes {
		if _, err := m.db.ExecContext(ctx, indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", indexSQL, err)
		}
	}

	m.logger.InfoWithFields("database indexes created", logger.Fields{
		"count": len(indexes),
	})

	return nil
}

// createTriggers creates database triggers for automatic updated_at timestamps
func (m *Migrator) createTriggers(ctx context.Context) error {
	// Detect database type by checking dialect
	dialectName := fmt.Sprintf("%T", m.db.Dialect())

	var triggers []string

	switch dialectName {
	case "*sqlitedialect.Dialect":
		triggers = []string{
			`CREATE TRIGGER IF NOT EXISTS update_clinicwa_moderators_updated_at
			 AFTER UPDATE ON clinicwa_moderators
			 BEGIN
			   UPDATE clinicwa_moderators SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
			 END`,
			`CREATE TRIGGER IF NOT EXISTS update_clinicwa_outbound_messages_updated_at
			 AFTER UPDATE ON clinicwa_outbound_messages
			 BEGIN
			   UPDATE clinicwa_outbound_messages SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
			 END`,
		}
	case "*pgdialect.Dialect":
		// PostgreSQL uses functions and triggers differently
		triggers = []string{
			// Create function for updating timestamp
			`CREATE OR REPLACE FUNCTION update_updated_at_column()
			 RETURNS TRIGGER AS $$
			 BEGIN
			   NEW.updated_at = CURRENT_TIMESTAMP;
			   RETURN NEW;
			 END;
			 $$ language 'plpgsql'`,

			// Create trigger using the function
			`DROP TRIGGER IF EXISTS update_clinicwa_moderators_updated_at ON clinicwa_moderators`,
			`CREATE TRIGGER update_clinicwa_moderators_updated_at
			 BEFORE UPDATE ON clinicwa_moderators
			 FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,

			`DROP TRIGGER IF EXISTS update_clinicwa_outbound_messages_updated_at ON clinicwa_outbound_messages`,
			`CREATE TRIGGER update_clinicwa_outbound_messages_updated_at
			 BEFORE UPDATE ON clinicwa_outbound_messages
			 FOR EACH ROW EXECUTE FUNCTION update_updated_at_column()`,
		}
	default:
		m.logger.WarnWithFields("unknown database type, skipping triggers", logger.Fields{
			"database": dialectName,
		})
		return nil
	}

	for _, triggerSQL := range triggers {
		if _, err := m.db.ExecContext(ctx, triggerSQL); err != nil {
			return fmt.Errorf("failed to create trigger: %s: %w", triggerSQL, err)
		}
	}

	m.logger.InfoWithFields("database triggers created", logger.Fields{
		"count":    len(triggers),
		"database": dialectName,
	})

	return nil
}

// runSchemaMigrations runs schema migrations for adding new columns
func (m *Migrator) runSchemaMigrations(ctx context.Context) error {
	m.logger.Info("running schema migrations")

	// Detect database type by checking dialect
	dialectName := fmt.Sprintf("%T", m.db.Dialect())

	var migrations []string

	switch dialectName {
	case "*sqlitedialect.Dialect":
		migrations = []string{
			// Add proxy_config column to clinicwa_moderators table
			`ALTER TABLE clinicwa_moderators ADD COLUMN proxy_config TEXT DEFAULT NULL`,
		}
	case "*pgdialect.Dialect":
		migrations = []string{
			// Add proxy_config column to clinicwa_moderators table
			`ALTER TABLE clinicwa_moderators ADD COLUMN IF NOT EXISTS proxy_config JSONB DEFAULT NULL`,
		}
	default:
		m.logger.WarnWithFields("unknown database type, skipping schema migrations", logger.Fields{
			"database": dialectName,
		})
		return nil
	}

	for _, migrationSQL := range migrations {
		if _, err := m.db.ExecContext(ctx, migrationSQL); err != nil {
			// Check if error is about column already existing
			if strings.Contains(err.Error(), "duplicate column name") ||
				strings.Contains(err.Error(), "already exists") ||
				strings.Contains(err.Error(), "column already exists") {
				m.logger.InfoWithFields("column already exists, skipping migration", logger.Fields{
					"migration": migrationSQL,
				})
				continue
			}
			return fmt.Errorf("failed to run schema migration: %s: %w", migrationSQL, err)
		}
	}

	m.logger.InfoWithFields("schema migrations completed", logger.Fields{
		"count":    len(migrations),
		"database": dialectName,
	})

	return nil
}

// Drop drops all tables (useful for testing)
func (m *Migrator) Drop(ctx context.Context) error {
	m.logger.Warn("dropping all database tables")

	models := []interface{}{
		(*database.ModeratorModel)(nil),
		(*database.PauseStateModel)(nil),
		(*database.OutboundMessageModel)(nil),
	}

	for _, model := range models {
		if err := m.dropTable(ctx, model); err != nil {
			return fmt.Errorf("failed to drop table for model %T: %w", model, err)
		}
	}

	m.logger.Info("all database tables dropped")
	return nil
}

// dropTable drops a table
func (m *Migrator) dropTable(ctx context.Context, model interface{}) error {
	_, err := m.db.NewDropTable().
		Model(model).
		IfExists().
		Exec(ctx)

	if err != nil {
		return err
	}

	tableName := tableNameFor(model)

	m.logger.InfoWithFields("table dropped", logger.Fields{
		"table": tableName,
	})

	return nil
}

// Reset drops and recreates all tables
func (m *Migrator) Reset(ctx context.Context) error {
	m.logger.Warn("resetting database (drop and recreate all tables)")

	if err := m.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to recreate tables: %w", err)
	}

	m.logger.Info("database reset completed")
	return nil
}
