package db

import (
	"testing"
	"time"
)

func TestPoolConfig_Defaults(t *testing.T) {
	cfg, err := poolConfig("postgres://clipnest:pw@localhost:5432/clipnest", Options{})
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if cfg.MaxConns != 10 {
		t.Errorf("MaxConns = %d, want 10", cfg.MaxConns)
	}
	if cfg.MinConns != 2 {
		t.Errorf("MinConns = %d, want 2", cfg.MinConns)
	}
	if cfg.MaxConnLifetime != time.Hour {
		t.Errorf("MaxConnLifetime = %s, want 1h", cfg.MaxConnLifetime)
	}
}

func TestPoolConfig_Sizing(t *testing.T) {
	cfg, err := poolConfig("postgres://clipnest:pw@localhost:5432/clipnest", Options{MaxConns: 25, MinConns: 5})
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if cfg.MaxConns != 25 || cfg.MinConns != 5 {
		t.Errorf("sizing = %d/%d, want 25/5", cfg.MaxConns, cfg.MinConns)
	}
}

func TestPoolConfig_MinClampedToMax(t *testing.T) {
	cfg, err := poolConfig("postgres://clipnest:pw@localhost:5432/clipnest", Options{MaxConns: 3, MinConns: 8})
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if cfg.MinConns != 3 {
		t.Errorf("MinConns = %d, want clamped to MaxConns (3)", cfg.MinConns)
	}
}

func TestPoolConfig_BadURL(t *testing.T) {
	if _, err := poolConfig("not a url::", Options{}); err == nil {
		t.Fatal("expected parse error")
	}
}
