package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want 4", cfg.WorkerCount)
	}
	if cfg.MessageProvider != "console" {
		t.Errorf("MessageProvider = %q, want console", cfg.MessageProvider)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_TTL", "10m")
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("MESSAGE_PROVIDER", " HTTP ")

	cfg := Load()

	if cfg.SessionTTL != 10*time.Minute {
		t.Errorf("SessionTTL = %v, want 10m", cfg.SessionTTL)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("WorkerCount = %d, want 2", cfg.WorkerCount)
	}
	if cfg.MessageProvider != "http" {
		t.Errorf("MessageProvider = %q, want http (trimmed, lowered)", cfg.MessageProvider)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "lots")
	t.Setenv("SESSION_TTL", "soon")

	cfg := Load()

	if cfg.WorkerCount != 4 {
		t.Errorf("WorkerCount = %d, want default 4", cfg.WorkerCount)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want default 30m", cfg.SessionTTL)
	}
}
