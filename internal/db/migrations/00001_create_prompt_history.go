package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePromptHistory, downCreatePromptHistory)
}

func upCreatePromptHistory(ctx context.Context, tx *sql.Tx) error {
	t := columnTypes()
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS prompt_history (
    id            %s PRIMARY KEY,
    requirement   %s NOT NULL,
    format        %s NOT NULL,
    provider      %s NOT NULL,
    prompt        %s NOT NULL,
    fallback      %s NOT NULL DEFAULT FALSE,
    quality_score %s NOT NULL,
    grade         %s NOT NULL,
    created_at    %s NOT NULL
)`, t.id, t.text, t.key, t.key, t.text, t.boolean, t.real, t.key, t.timestamp)

	return execAll(func(s string) error {
		_, err := tx.ExecContext(ctx, s)
		return err
	},
		ddl,
		`CREATE INDEX prompt_history_created_at_idx ON prompt_history (created_at)`,
	)
}

func downCreatePromptHistory(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS prompt_history`)
	return err
}
