package auth

import (
	"context"
	"testing"
)

func TestIdentityContextRoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{UserID: 5, Email: "a@x.com"})

	id, ok := IdentityFromContext(ctx)
	if !ok {
		t.Fatal("identity not found in context")
	}
	if id.UserID != 5 || id.Email != "a@x.com" {
		t.Errorf("identity = %+v", id)
	}
}

func TestIdentityFromEmptyContext(t *testing.T) {
	if _, ok := IdentityFromContext(context.Background()); ok {
		t.Error("expected no identity in a fresh context")
	}
}
