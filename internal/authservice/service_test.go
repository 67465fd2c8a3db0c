package authservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/starford/skald/internal/apperr"
	"github.com/starford/skald/internal/auth"
	"github.com/starford/skald/internal/testutil"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestService(t *testing.T) (*Service, *testutil.FakeStore) {
	t.Helper()
	st := testutil.NewFakeStore()
	codec := auth.NewCodec(testSecret, time.Hour)
	return NewService(st, auth.NewArgon2(), codec, nil), st
}

func TestLoginRegistersUnknownEmail(t *testing.T) {
	svc, st := newTestService(t)

	res, err := svc.Login(context.Background(), "A@X.com", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Outcome != OutcomeRegistered {
		t.Errorf("outcome = %q, want %q", res.Outcome, OutcomeRegistered)
	}
	if res.User.Email != "a@x.com" {
		t.Errorf("email not normalized: %q", res.User.Email)
	}
	if res.Token == "" {
		t.Error("no token issued")
	}
	if st.UserCount() != 1 {
		t.Errorf("user count = %d, want 1", st.UserCount())
	}
	// The stored hash is opaque, never the raw password.
	if u, _ := st.FindByEmail(context.Background(), "a@x.com"); u.PasswordHash == "pw1" {
		t.Error("password stored in the clear")
	}
}

func TestLoginAuthenticatesKnownEmail(t *testing.T) {
	svc, st := newTestService(t)

	if _, err := svc.Login(context.Background(), "a@x.com", "pw1"); err != nil {
		t.Fatalf("first login: %v", err)
	}

	res, err := svc.Login(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if res.Outcome != OutcomeAuthenticated {
		t.Errorf("outcome = %q, want %q", res.Outcome, OutcomeAuthenticated)
	}
	if st.UserCount() != 1 {
		t.Errorf("user count = %d, want 1 (no duplicate registration)", st.UserCount())
	}
}

// Documents the deliberate enumeration trade-off: a known email with a
// wrong password is rejected while an unknown email is silently
// registered, matching the reference behavior rather than closing the
// oracle.
func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, st := newTestService(t)

	if _, err := svc.Login(context.Background(), "a@x.com", "pw1"); err != nil {
		t.Fatalf("first login: %v", err)
	}

	_, err := svc.Login(context.Background(), "a@x.com", "wrongpw")
	if !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
	if st.UserCount() != 1 {
		t.Errorf("wrong password must not create a user, count = %d", st.UserCount())
	}
}

func TestLoginIssuedTokenVerifies(t *testing.T) {
	st := testutil.NewFakeStore()
	codec := auth.NewCodec(testSecret, time.Hour)
	svc := NewService(st, auth.NewArgon2(), codec, nil)

	res, err := svc.Login(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := codec.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if id != res.User.ID {
		t.Errorf("token subject = %d, want %d", id, res.User.ID)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("token email = %q", claims.Email)
	}
}

func TestLoginSurfacesStoreFailure(t *testing.T) {
	svc, st := newTestService(t)
	st.FindErr = apperr.ErrUnavailable

	_, err := svc.Login(context.Background(), "a@x.com", "pw1")
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Fatalf("error = %v, want wrapped ErrUnavailable", err)
	}
}

func TestLoginFailsClosedOnBrokenStoredHash(t *testing.T) {
	st := testutil.NewFakeStore()
	if _, err := st.CreateUser(context.Background(), "a@x.com", "not-a-phc-hash"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	svc := NewService(st, auth.NewArgon2(), auth.NewCodec(testSecret, time.Hour), nil)

	_, err := svc.Login(context.Background(), "a@x.com", "pw1")
	if !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}
