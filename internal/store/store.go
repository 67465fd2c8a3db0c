// Package store provides the persistence collaborators for Skald: a user
// store and a note store, each available on PostgreSQL (pgx) or SQLite.
//
// The auth and note flows depend only on the interfaces here. Both backends
// translate driver errors into the apperr taxonomy and run every query under
// a bounded timeout; failed calls are surfaced, never retried internally.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/starford/skald/internal/models"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultQueryTimeout bounds individual store calls when the config does
// not say otherwise.
const DefaultQueryTimeout = 5 * time.Second

// UserStore is the credential-record collaborator used by the login flow.
type UserStore interface {
	// FindByEmail looks up a user by normalized (lowercase) email.
	// Returns apperr.ErrNotFound when no such user exists.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateUser inserts a new credential record and returns it with the
	// generated id and timestamp.
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
}

// NoteStore is the note-record collaborator used by the note flow.
type NoteStore interface {
	// ListByOwner returns the owner's notes, optionally restricted to
	// created_at > from, in ascending id order.
	ListByOwner(ctx context.Context, ownerID int64, from *time.Time) ([]models.Note, error)
	// InsertNote creates a note in a single atomic insert and returns it
	// with the generated id and timestamp.
	InsertNote(ctx context.Context, ownerID int64, content string, tags []string) (*models.Note, error)
}

// Store aggregates both collaborators behind one connection pool.
type Store interface {
	UserStore
	NoteStore
	Ping(ctx context.Context) error
	Close() error
}

// Config selects and tunes a backend.
type Config struct {
	Driver       string
	DSN          string
	MaxConns     int
	QueryTimeout time.Duration
}

// Open connects the configured backend and brings its schema up to date.
// A store that cannot be reached here is a fatal startup condition for the
// caller; Open never degrades silently.
func Open(ctx context.Context, cfg Config) (Store, error) {
	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	switch cfg.Driver {
	case DriverPostgres:
		return openPostgres(ctx, cfg.DSN, cfg.MaxConns, timeout)
	case DriverSQLite:
		return openSQLite(ctx, cfg.DSN, timeout)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
