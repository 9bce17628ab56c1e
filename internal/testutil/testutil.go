package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/bondflash/internal/db"
	"github.com/vytor/bondflash/internal/logger"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// A single connection keeps every query on the same in-memory database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	ctx := logger.NewContext(context.Background(), logger.Discard())
	require.NoError(t, db.Migrate(ctx, sqlDB), "failed to apply migrations")

	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// InsertUser creates a user row with the given progression and returns its id.
func InsertUser(t *testing.T, sqlDB *sql.DB, xp, level, currency int) int64 {
	res, err := sqlDB.Exec(`INSERT INTO users (current_xp, level, currency) VALUES (?, ?, ?)`, xp, level, currency)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// Quiet returns a context whose logger discards output.
func Quiet() context.Context {
	return logger.NewContext(context.Background(), logger.Discard())
}
