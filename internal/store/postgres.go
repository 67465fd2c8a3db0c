package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/starford/skald/internal/apperr"
	"github.com/starford/skald/internal/models"
	"github.com/starford/skald/internal/store/migrations"
)

// Postgres error codes relevant to the taxonomy.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type postgresStore struct {
	db           *sql.DB
	queryTimeout time.Duration
}

var _ Store = (*postgresStore)(nil)

func openPostgres(ctx context.Context, dsn string, maxConns int, queryTimeout time.Duration) (*postgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open postgres: %w", err)
	}
	if maxConns > 0 {
		// Bounded pool: callers beyond the bound queue on the pool rather
		// than failing immediately.
		db.SetMaxOpenConns(maxConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping postgres: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: run migrations: %w", err)
	}

	return &postgresStore{db: db, queryTimeout: queryTimeout}, nil
}

func (s *postgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, pgError("find user", err)
	}
	return user, nil
}

func (s *postgresStore) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	user := &models.User{Email: email, PasswordHash: passwordHash}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id, created_at`,
		email, passwordHash,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, pgError("create user", err)
	}
	return user, nil
}

func (s *postgresStore) ListByOwner(ctx context.Context, ownerID int64, from *time.Time) ([]models.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `SELECT id, owner_id, content, tags, created_at FROM notes WHERE owner_id = $1`
	args := []any{ownerID}
	if from != nil {
		query += ` AND created_at > $2`
		args = append(args, *from)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgError("list notes", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		var n models.Note
		var rawTags []byte
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Content, &rawTags, &n.CreatedAt); err != nil {
			return nil, pgError("scan note", err)
		}
		if n.Tags, err = decodeTags(rawTags); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, pgError("list notes", err)
	}
	return notes, nil
}

func (s *postgresStore) InsertNote(ctx context.Context, ownerID int64, content string, tags []string) (*models.Note, error) {
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
		`INSERT INTO notes (owner_id, content, tags) VALUES ($1, $2, $3::jsonb) RETURNING id, created_at`,
		ownerID, content, tagsJSON,
	).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return nil, pgError("insert note", err)
	}
	return note, nil
}

func (s *postgresStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return pgError("ping", err)
	}
	return nil
}

func (s *postgresStore) Close() error {
	return s.db.Close()
}

// pgError folds a driver error into the apperr taxonomy, keeping the
// original text for logs but never for clients.
func pgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return fmt.Errorf("store: %s: %s: %w", op, pgErr.Code, apperr.ErrIntegrity)
		}
	}
	// Anything else reads as an availability failure to the caller.
	return fmt.Errorf("store: %s: %v: %w", op, err, apperr.ErrUnavailable)
}
