// Package authservice implements the login/register flow: it turns an
// email/password pair into a rejected attempt or an issued session token,
// transparently registering unknown emails on first login.
package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/skald/internal/apperr"
	"github.com/starford/skald/internal/auth"
	"github.com/starford/skald/internal/models"
	"github.com/starford/skald/internal/store"
)

// Outcome tags how a login attempt succeeded. Both outcomes drive the same
// token issuance and identical HTTP responses; the tag only differentiates
// logging.
type Outcome string

const (
	OutcomeAuthenticated Outcome = "authenticated"
	OutcomeRegistered    Outcome = "registered"
)

// Result is a successful login: the user record and a freshly issued token.
type Result struct {
	User    *models.User
	Token   string
	Claims  *auth.Claims
	Outcome Outcome
}

// Service orchestrates the credential hasher, user store, and token codec.
type Service struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	codec  *auth.Codec
	logger *slog.Logger
}

// NewService creates the login/register service.
func NewService(users store.UserStore, hasher auth.PasswordHasher, codec *auth.Codec, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, hasher: hasher, codec: codec, logger: logger}
}

// Login authenticates email/password. A known email with a wrong password
// yields apperr.ErrInvalidCredentials; an unknown email is registered on
// the spot. The email is normalized to lowercase before any lookup.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		ok, verr := s.hasher.Verify(password, user.PasswordHash)
		if verr != nil {
			// A stored hash that cannot be parsed fails closed.
			s.logger.Error("password verify failed", slog.String("error", verr.Error()))
			return nil, apperr.ErrInvalidCredentials
		}
		if !ok {
			return nil, apperr.ErrInvalidCredentials
		}
		return s.issue(user, OutcomeAuthenticated)

	case errors.Is(err, apperr.ErrNotFound):
		user, err = s.register(ctx, email, password)
		if err != nil {
			return nil, err
		}
		return s.issue(user, OutcomeRegistered)

	default:
		return nil, fmt.Errorf("authservice: find user: %w", err)
	}
}

func (s *Service) register(ctx context.Context, email, password string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("authservice: hash password: %w", err)
	}
	user, err := s.users.CreateUser(ctx, email, hash)
	if err != nil {
		return nil, fmt.Errorf("authservice: create user: %w", err)
	}
	return user, nil
}

func (s *Service) issue(user *models.User, outcome Outcome) (*Result, error) {
	token, claims, err := s.codec.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("authservice: issue token: %w", err)
	}
	s.logger.Info("login succeeded",
		slog.Int64("user_id", user.ID),
		slog.String("outcome", string(outcome)))
	return &Result{User: user, Token: token, Claims: claims, Outcome: outcome}, nil
}
