package auth

import (
	"strings"
	"testing"
)

func TestArgon2HashFormat(t *testing.T) {
	a := NewArgon2()
	hash, err := a.Hash("testPassword123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash should start with $argon2id$, got %q", hash)
	}
	if len(strings.Split(hash, "$")) != 6 {
		t.Errorf("hash should have 6 $-separated parts, got %q", hash)
	}
}

func TestArgon2RoundTrip(t *testing.T) {
	a := NewArgon2()

	tests := []struct {
		name     string
		password string
	}{
		{"simple", "hunter2"},
		{"empty", ""},
		{"long", strings.Repeat("a", 128)},
		{"unicode", "pässwörd🔐"},
		{"special chars", "p@ssw0rd!#$%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := a.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash: %v", err)
			}
			ok, err := a.Verify(tt.password, hash)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if !ok {
				t.Error("Verify(p, Hash(p)) = false, want true")
			}
		})
	}
}

func TestArgon2RejectsWrongPassword(t *testing.T) {
	a := NewArgon2()
	hash, err := a.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	ok, err := a.Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Error("Verify accepted a wrong password")
	}
}

func TestArgon2SaltedNonDeterminism(t *testing.T) {
	a := NewArgon2()

	h1, err := a.Hash("samePassword")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := a.Hash("samePassword")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical; salt is not random")
	}

	// Cross-verification still works because parameters travel in the hash.
	for _, h := range []string{h1, h2} {
		ok, err := a.Verify("samePassword", h)
		if err != nil || !ok {
			t.Errorf("Verify against %q = (%v, %v), want (true, nil)", h, ok, err)
		}
	}
}

func TestArgon2VerifyFailsClosed(t *testing.T) {
	a := NewArgon2()

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"garbage", "not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"},
		{"truncated", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=abc,t=3,p=2$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := a.Verify("whatever", tt.encoded)
			if ok {
				t.Error("broken stored hash verified as valid")
			}
			if err == nil {
				t.Error("expected a parse error")
			}
		})
	}
}
