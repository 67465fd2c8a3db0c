package internal

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestDefaultConfigValidWithSecret(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Secret = testSecret
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults with a secret should pass: %v", err)
	}
}

func TestAuthConfig_MissingSecret(t *testing.T) {
	cfg := NewDefaultConfig()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("missing secret should fail validation")
	}
}

func TestAuthConfig_ShortSecret(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Secret = "too-short"
	err := cfg.Auth.Validate()
	if err == nil {
		t.Fatal("short secret should fail validation")
	}
	if !strings.Contains(err.Error(), "Secret") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_NonPositiveLifetime(t *testing.T) {
	cfg := AuthConfig{Secret: testSecret, SessionLifetime: 0, CookieName: "token"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero session lifetime should fail validation")
	}
	cfg.SessionLifetime = -time.Hour
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative session lifetime should fail validation")
	}
}

func TestAuthConfig_MissingCookieName(t *testing.T) {
	cfg := AuthConfig{Secret: testSecret, SessionLifetime: time.Hour, CookieName: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty cookie name should fail validation")
	}
}

func TestStorageConfig_UnknownDriver(t *testing.T) {
	cfg := StorageConfig{Driver: "oracle", DSN: "x", MaxConns: 1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown driver should fail validation")
	}
}

func TestStorageConfig_MissingDSN(t *testing.T) {
	cfg := StorageConfig{Driver: "sqlite", DSN: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty dsn should fail validation")
	}
}

func TestHTTPConfig_PortBounds(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
}

func TestHTTPConfig_Address(t *testing.T) {
	cfg := HTTPConfig{Port: 8080}
	if got := cfg.Address(); got != ":8080" {
		t.Errorf("address = %q, want :8080", got)
	}
}
