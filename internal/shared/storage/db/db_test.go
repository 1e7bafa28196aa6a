package db

import (
	"context"
	"testing"
	"time"
)

func TestOptionsFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "42")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DB_PING_TIMEOUT", "2s")

	opts := OptionsFromEnv(DefaultServerOptions())
	if opts.MaxOpenConns != 42 {
		t.Fatalf("MaxOpenConns = %d, want 42", opts.MaxOpenConns)
	}
	if opts.ConnMaxLifetime != 30*time.Minute {
		t.Fatalf("ConnMaxLifetime = %v", opts.ConnMaxLifetime)
	}
	if opts.PingTimeout != 2*time.Second {
		t.Fatalf("PingTimeout = %v", opts.PingTimeout)
	}
	// Untouched values keep defaults.
	if opts.MaxIdleConns != DefaultServerOptions().MaxIdleConns {
		t.Fatalf("MaxIdleConns = %d", opts.MaxIdleConns)
	}
}

func TestOptionsFromEnvIgnoresInvalid(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	opts := OptionsFromEnv(DefaultServerOptions())
	if opts.MaxOpenConns != DefaultServerOptions().MaxOpenConns {
		t.Fatalf("invalid env should keep default, got %d", opts.MaxOpenConns)
	}
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", DefaultServerOptions()); err == nil {
		t.Fatalf("expected error for empty DATABASE_URL")
	}
}
