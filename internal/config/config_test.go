package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SQLiteDBPath == "" {
		t.Fatal("expected a default db path")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SQLITE_DB_PATH", "/tmp/x.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9999" || cfg.SQLiteDBPath != "/tmp/x.db" || cfg.LogLevel != "debug" {
		t.Fatalf("env not honored: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	good := &Config{Port: "8080", SQLiteDBPath: filepath.Join(t.TempDir(), "tally.db"), LogLevel: "warn"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	bads := []*Config{
		{Port: "abc", SQLiteDBPath: "x.db", LogLevel: "info"},
		{Port: "0", SQLiteDBPath: "x.db", LogLevel: "info"},
		{Port: "70000", SQLiteDBPath: "x.db", LogLevel: "info"},
		{Port: "8080", SQLiteDBPath: "", LogLevel: "info"},
		{Port: "8080", SQLiteDBPath: "x.db", LogLevel: "verbose"},
	}
	for i, cfg := range bads {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := &Config{LogLevel: "ERROR"}
	lvl, err := cfg.SlogLevel()
	if err != nil || lvl != slog.LevelError {
		t.Fatalf("expected error level, got %v (%v)", lvl, err)
	}
}
