package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// HistoryEntry is one generated prompt.
type HistoryEntry struct {
	ID           string    `db:"id" json:"id"`
	Requirement  string    `db:"requirement" json:"requirement"`
	Format       string    `db:"format" json:"format"`
	Provider     string    `db:"provider" json:"provider"`
	Prompt       string    `db:"prompt" json:"prompt"`
	Fallback     bool      `db:"fallback" json:"fallback"`
	QualityScore float64   `db:"quality_score" json:"quality_score"`
	Grade        string    `db:"grade" json:"grade"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type HistoryStore struct {
	db *sqlx.DB
}

func NewHistoryStore(db *sqlx.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *HistoryStore) q(query string) string { return s.db.Rebind(query) }

// Create stores e with a fresh ID and creation time and returns the stored row.
func (s *HistoryStore) Create(ctx context.Context, e HistoryEntry) (*HistoryEntry, error) {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO prompt_history (id, requirement, format, provider, prompt, fallback, quality_score, grade, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), e.ID, e.Requirement, e.Format, e.Provider, e.Prompt, e.Fallback, e.QualityScore, e.Grade, e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, e.ID)
}

// GetByID returns the entry with the given id, or ErrNotFound.
func (s *HistoryStore) GetByID(ctx context.Context, id string) (*HistoryEntry, error) {
	var e HistoryEntry
	err := s.db.GetContext(ctx, &e, s.q(`SELECT * FROM prompt_history WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns the newest entries first. A limit <= 0 returns every entry.
func (s *HistoryStore) List(ctx context.Context, limit int) ([]*HistoryEntry, error) {
	entries := []*HistoryEntry{}
	var err error
	if limit > 0 {
		err = s.db.SelectContext(ctx, &entries, s.q(`SELECT * FROM prompt_history ORDER BY created_at DESC LIMIT ?`), limit)
	} else {
		err = s.db.SelectContext(ctx, &entries, `SELECT * FROM prompt_history ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of stored entries.
func (s *HistoryStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM prompt_history`); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes one entry. Returns ErrNotFound if it does not exist.
func (s *HistoryStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM prompt_history WHERE id = ?`), id)
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

// Clear removes every entry and reports how many were deleted.
func (s *HistoryStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM prompt_history`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
