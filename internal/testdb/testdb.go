// Package testdb provides utilities for database integration tests.
// It only depends on store interfaces and standard database packages,
// not on specific store implementations.
package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/userhub/userhub/migrations"
)

// TestTimeout bounds individual test database operations.
const TestTimeout = 5 * time.Second

// IsIntegrationTestEnvironment reports whether a test database URL is
// configured, indicating that integration tests can run.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns the database URL for tests. It checks
// USERHUB_TEST_DB_URL and DATABASE_URL in that order.
func GetTestDatabaseURL() string {
	if url := os.Getenv("USERHUB_TEST_DB_URL"); url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}

// Connect opens the test database, applies the embedded migrations and
// registers cleanup. Tests must call SkipUnlessIntegration first.
func Connect(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", GetTestDatabaseURL())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "."), "failed to apply migrations")

	return db
}

// SkipUnlessIntegration skips the test when no test database is
// configured.
func SkipUnlessIntegration(t *testing.T) {
	t.Helper()

	if !IsIntegrationTestEnvironment() {
		t.Skip("skipping integration test; set USERHUB_TEST_DB_URL or DATABASE_URL to run")
	}
}

// ResetUsers clears the users table so each test starts from an empty
// store.
func ResetUsers(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	_, err := db.ExecContext(ctx, "TRUNCATE TABLE users")
	require.NoError(t, err, "failed to truncate users table")
}

// WithTx runs fn inside a transaction and always rolls back, so the
// test leaves no trace in the database.
func WithTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(tx)
}
