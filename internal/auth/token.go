package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failure kinds. They stay distinguishable inside the
// service (logging, tests); the HTTP boundary flattens all three to one
// generic 401 so clients cannot tell which check failed.
var (
	ErrTokenMalformed = errors.New("auth: malformed token")
	ErrTokenSignature = errors.New("auth: token signature mismatch")
	ErrTokenExpired   = errors.New("auth: token expired")
)

// Claims are the statements carried inside a session token. Subject holds
// the decimal user id; Email is a custom claim so protected handlers can
// attribute responses without a store lookup.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// UserID parses the subject claim into the owning user's id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("auth: non-numeric subject %q: %w", c.Subject, err)
	}
	return id, nil
}

// Codec issues and verifies stateless session tokens (HS256-signed JWTs).
// Sessions are never stored server-side: everything a protected handler
// needs travels inside the signed token.
type Codec struct {
	secret   []byte
	lifetime time.Duration
}

// NewCodec returns a Codec signing with secret. Issued tokens expire
// lifetime after issuance.
func NewCodec(secret []byte, lifetime time.Duration) *Codec {
	return &Codec{secret: secret, lifetime: lifetime}
}

// Lifetime returns the session lifetime, which is also the cookie max-age.
func (c *Codec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue signs a fresh token for the given user. Expiry is always issuance
// time plus the configured lifetime.
func (c *Codec) Issue(userID int64, email string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify checks the signature first and only then trusts the decoded
// claims. Failure kinds map to the package sentinels.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, fmt.Errorf("auth: verify token: %w", err)
		}
	}
	if !token.Valid {
		return nil, ErrTokenSignature
	}
	return claims, nil
}
