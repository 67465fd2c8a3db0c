package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/starford/skald/internal/apperr"
	"github.com/starford/skald/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id   INTEGER NOT NULL REFERENCES users(id),
	content    TEXT NOT NULL,
	tags       TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notes_owner_created ON notes(owner_id, created_at);
`

// sqliteStore is the local-first backend. It applies its schema inline on
// open; only the PostgreSQL backend uses goose migrations.
type sqliteStore struct {
	db           *sql.DB
	queryTimeout time.Duration
}

var _ Store = (*sqliteStore)(nil)

func openSQLite(ctx context.Context, dsn string, queryTimeout time.Duration) (*sqliteStore, error) {
	db, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply sqlite schema: %w", err)
	}
	return &sqliteStore{db: db, queryTimeout: queryTimeout}, nil
}

func (s *sqliteStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, sqliteError("find user", err)
	}
	return user, nil
}

func (s *sqliteStore) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	user := &models.User{Email: email, PasswordHash: passwordHash}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash) VALUES (?, ?) RETURNING id, created_at`,
		email, passwordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, sqliteError("create user", err)
	}
	return user, nil
}

func (s *sqliteStore) ListByOwner(ctx context.Context, ownerID int64, from *time.Time) ([]models.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `SELECT id, owner_id, content, tags, created_at FROM notes WHERE owner_id = ?`
	args := []any{ownerID}
	if from != nil {
		query += ` AND created_at > ?`
		args = append(args, from.UTC())
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqliteError("list notes", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		var rawTags []byte
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Content, &rawTags, &n.CreatedAt); err != nil {
			return nil, sqliteError("scan note", err)
		}
		if n.Tags, err = decodeTags(rawTags); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, sqliteError("list notes", err)
	}
	return notes, nil
}

func (s *sqliteStore) InsertNote(ctx context.Context, ownerID int64, content string, tags []string) (*models.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	tagsJSON, err := encodeTags(tags)
	if err != nil {
		return nil, err
	}

	note := &models.Note{OwnerID: ownerID, Content: content, Tags: tags}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO notes (owner_id, content, tags) VALUES (?, ?, ?) RETURNING id, created_at`,
		ownerID, content, tagsJSON,
	).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return nil, sqliteError("insert note", err)
	}
	return note, nil
}

func (s *sqliteStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return sqliteError("ping", err)
	}
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func sqliteError(op string, err error) error {
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("store: %s: %v: %w", op, err, apperr.ErrIntegrity)
	}
	return fmt.Errorf("store: %s: %v: %w", op, err, apperr.ErrUnavailable)
}
