package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Credential is a stored provider API key.
type Credential struct {
	Provider   string       `db:"provider"`
	APIKey     string       `db:"api_key"`
	CreatedAt  time.Time    `db:"created_at"`
	LastUsedAt sql.NullTime `db:"last_used_at"`
}

type CredentialStore struct {
	db *sqlx.DB
}

func NewCredentialStore(db *sqlx.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *CredentialStore) q(query string) string { return s.db.Rebind(query) }

// Upsert stores apiKey for provider, replacing any existing key. Replacing a
// key keeps created_at and resets last_used_at.
//
// UPDATE-then-INSERT inside one transaction keeps the statement portable
// across SQLite, PostgreSQL and MySQL.
func (s *CredentialStore) Upsert(ctx context.Context, provider, apiKey string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, s.q(`
		UPDATE credentials SET api_key = ?, last_used_at = NULL WHERE provider = ?
	`), apiKey, provider)
	if err != nil {
		return fmt.Errorf("update credential: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		_, err = tx.ExecContext(ctx, s.q(`
			INSERT INTO credentials (provider, api_key, created_at) VALUES (?, ?, ?)
		`), provider, apiKey, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("insert credential: %w", err)
		}
	}
	return tx.Commit()
}

// Get returns the credential for provider, or ErrNotFound.
func (s *CredentialStore) Get(ctx context.Context, provider string) (*Credential, error) {
	var c Credential
	err := s.db.GetContext(ctx, &c, s.q(`SELECT * FROM credentials WHERE provider = ?`), provider)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all credentials ordered by provider.
func (s *CredentialStore) List(ctx context.Context) ([]*Credential, error) {
	creds := []*Credential{}
	if err := s.db.SelectContext(ctx, &creds, `SELECT * FROM credentials ORDER BY provider ASC`); err != nil {
		return nil, err
	}
	return creds, nil
}

// Delete removes the credential for provider. Returns ErrNotFound if none is stored.
func (s *CredentialStore) Delete(ctx context.Context, provider string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM credentials WHERE provider = ?`), provider)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastUsed records that the credential for provider was just used.
func (s *CredentialStore) TouchLastUsed(ctx context.Context, provider string) error {
	_, err := s.db.ExecContext(ctx, s.q(`UPDATE credentials SET last_used_at = ? WHERE provider = ?`), time.Now().UTC(), provider)
	return err
}
