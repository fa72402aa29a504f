package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCredentials, downCreateCredentials)
}

func upCreateCredentials(ctx context.Context, tx *sql.Tx) error {
	t := columnTypes()
	_, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS credentials (
    provider     %s PRIMARY KEY,
    api_key      %s NOT NULL,
    created_at   %s NOT NULL,
    last_used_at %s NULL
)`, t.key, t.text, t.timestamp, t.timestamp))
	if err != nil {
		return fmt.Errorf("create credentials table: %w", err)
	}
	return nil
}

func downCreateCredentials(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS credentials`)
	return err
}
