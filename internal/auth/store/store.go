// Package store defines the persistence contract for the auth service.
// Concrete drivers (sqlite, postgres) implement the same find/upsert
// semantics; nothing above this package depends on which backend is wired.
package store

import (
	"context"
	"errors"

	"github.com/zeepkist/gtr-auth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface, exposing sub-repositories per
// aggregate to keep concerns tidy and testable.
type Store interface {
	Users() Users
	TokenRecords() TokenRecords

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Preferred over Tx for multi-step
	// operations that must be atomic (e.g. get-or-create).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserBySteamID returns the user registered for a SteamID64.
	GetUserBySteamID(ctx context.Context, steamID string) (domain.User, error)

	// CreateUser inserts a new user and returns it with its assigned id.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// UpdateSteamName refreshes the display name and bumps updated_at.
	UpdateSteamName(ctx context.Context, userID int64, steamName string) error
}

type TokenRecords interface {
	// Find returns the token record for a (user, auth type) key, or
	// ErrNotFound when the user has never logged in on that channel.
	Find(ctx context.Context, userID int64, authType domain.AuthType) (domain.TokenRecord, error)

	// Upsert overwrites the record for the (user_id, auth_type) key, or
	// inserts it when absent. The write is a single atomic statement: two
	// racing upserts for the same key never produce two rows, the last
	// committed write wins, and a cancelled call leaves no partial record.
	Upsert(ctx context.Context, rec domain.TokenRecord) error
}
