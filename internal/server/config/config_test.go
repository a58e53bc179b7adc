package config

import (
	"encoding/base64"
	"os"
	"testing"
	"time"
)

func validKey() string {
	return base64.URLEncoding.EncodeToString(make([]byte, 32))
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "jwt-secret")
	t.Setenv("ENCRYPTION_KEY", validKey())
}

// unsetEnv removes variables that may leak in from the developer's shell.
// t.Setenv registers the restore, os.Unsetenv makes the variable truly absent.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t, "SERVER_ADDRESS", "DATABASE_URL", "ACCESS_TOKEN_TTL", "BCRYPT_COST", "HASH_WORKERS")
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.ServerAddress != ":8080" {
		t.Fatalf("unexpected address: %q", cfg.ServerAddress)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("unexpected token TTL: %v", cfg.AccessTokenTTL)
	}
	if len(cfg.CipherKey) != 32 {
		t.Fatalf("expected decoded 32-byte cipher key, got %d bytes", len(cfg.CipherKey))
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.ServerAddress != ":9999" {
		t.Fatalf("unexpected address: %q", cfg.ServerAddress)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("unexpected token TTL: %v", cfg.AccessTokenTTL)
	}
	if cfg.DatabaseURL != "postgres://u:p@db:5432/x" {
		t.Fatalf("unexpected database URL: %q", cfg.DatabaseURL)
	}
}

func TestLoadConfig_MissingSecretKey(t *testing.T) {
	unsetEnv(t, "SECRET_KEY")
	t.Setenv("ENCRYPTION_KEY", validKey())

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when SECRET_KEY is absent")
	}
}

func TestLoadConfig_MissingEncryptionKey(t *testing.T) {
	unsetEnv(t, "ENCRYPTION_KEY")
	t.Setenv("SECRET_KEY", "jwt-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when ENCRYPTION_KEY is absent")
	}
}

func TestLoadConfig_InvalidEncryptionKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "jwt-secret")
	t.Setenv("ENCRYPTION_KEY", base64.URLEncoding.EncodeToString(make([]byte, 16)))

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for a 16-byte encryption key")
	}
}
