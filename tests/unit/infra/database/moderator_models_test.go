package database

import (
	"context"
	"database/sql"
	"testing"

	"clinicwa/internal/infra/database"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func setupTestDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	return db
}

func TestModeratorModel_CreateTable(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	_, err := db.NewCreateTable().
		Model((*database.ModeratorModel)(nil)).
		IfNotExists().
		Exec(ctx)
	require.NoError(t, err, "should be able to create clinicwa_moderators table")

	var count int
	err = db.NewSelect().
		ColumnExpr("COUNT(*)").
		TableExpr("sqlite_master").
		Where("type = ? AND name = ?", "table", "clinicwa_moderators").
		Scan(ctx, &count)
	require.NoError(t, err, "failed to query sqlite_master")
	assert.Equal(t, 1, count, "clinicwa_moderators table should exist")

	rows, err := db.QueryContext(ctx, "PRAGMA table_info(clinicwa_moderators)")
	require.NoError(t, err)
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, dataType string
		var notNull, pk int
		var defaultValue sql.NullString

		err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultValue, &pk)
		require.NoError(t, err)
		columns[name] = true
	}

	expectedColumns := []string{"id", "name", "proxy_config", "is_active", "created_at", "updated_at"}
	for _, col := range expectedColumns {
		assert.True(t, columns[col], "column %s should exist", col)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO clinicwa_moderators (id, name, is_active, created_at, updated_at)
		VALUES ('test-id', 'test-moderator', true, datetime('now'), datetime('now'))
	`)
	require.NoError(t, err, "should be able to insert data")

	var moderatorCount int
	err = db.NewSelect().
		ColumnExpr("COUNT(*)").
		TableExpr("clinicwa_moderators").
		Where("name = ?", "test-moderator").
		Scan(ctx, &moderatorCount)
	require.NoError(t, err, "should be able to read from clinicwa_moderators")
	assert.Equal(t, 1, moderatorCount, "should find the inserted moderator")
}
