// Package testutil holds helpers shared by package tests.
package testutil

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/promptforge/promptforge/internal/db"
	_ "modernc.org/sqlite"
)

// NewTestDB opens an in-memory SQLite DB and runs all migrations.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	// A named shared-cache memory DB lets every pool connection see the same
	// data. Subtest names contain slashes, which SQLite would treat as a path.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_pragma=busy_timeout(5000)"
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(conn, "sqlite3"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Serialize access so async writers, such as the token middleware's
	// last_used_at update, cannot hit shared-cache table locks.
	conn.SetMaxOpenConns(1)
	return conn
}
