package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateAPITokens, downCreateAPITokens)
}

func upCreateAPITokens(ctx context.Context, tx *sql.Tx) error {
	t := columnTypes()
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS api_tokens (
    id           %s PRIMARY KEY,
    name         %s NOT NULL,
    token_hash   %s NOT NULL UNIQUE,
    last_used_at %s NULL,
    expires_at   %s NULL,
    created_at   %s NOT NULL,
    revoked_at   %s NULL
)`, t.id, t.key, t.key, t.timestamp, t.timestamp, t.timestamp, t.timestamp)

	return execAll(func(s string) error {
		_, err := tx.ExecContext(ctx, s)
		return err
	},
		ddl,
		`CREATE INDEX api_tokens_created_at_idx ON api_tokens (created_at)`,
	)
}

func downCreateAPITokens(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS api_tokens`)
	return err
}
