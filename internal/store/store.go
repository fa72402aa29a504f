// Package store persists generated prompts and provider credentials.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// HistoryStoreIface exposes prompt history operations.
type HistoryStoreIface interface {
	Create(ctx context.Context, e HistoryEntry) (*HistoryEntry, error)
	GetByID(ctx context.Context, id string) (*HistoryEntry, error)
	List(ctx context.Context, limit int) ([]*HistoryEntry, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
}

// CredentialStoreIface exposes stored provider API keys.
type CredentialStoreIface interface {
	Upsert(ctx context.Context, provider, apiKey string) error
	Get(ctx context.Context, provider string) (*Credential, error)
	List(ctx context.Context) ([]*Credential, error)
	Delete(ctx context.Context, provider string) error
	TouchLastUsed(ctx context.Context, provider string) error
}
