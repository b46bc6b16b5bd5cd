package config

import (
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("ALLOWED_ORIGINS", `["https://app.example.com"]`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("TokenTTL want 2h, got %v", cfg.TokenTTL)
	}
	if cfg.HTTPAddress != ":9090" {
		t.Fatalf("HTTPAddress: %s", cfg.HTTPAddress)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Fatalf("AllowedOrigins: %v", cfg.AllowedOrigins)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("default TTL: %v", cfg.TokenTTL)
	}
	if cfg.HTTPAddress != ":8080" {
		t.Fatalf("default address: %s", cfg.HTTPAddress)
	}
}

func TestLoad_MissingSecretIsFatal(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing JWT_SECRET, got nil")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing DATABASE_URL, got nil")
	}
}

func TestLoad_BadTTL(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "notaduration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed TOKEN_TTL")
	}
}
