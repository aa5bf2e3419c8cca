package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Rows != 5 || cfg.Cols != 10 {
		t.Fatalf("expected 5x10, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.MaxAttempts != 0 {
		t.Fatalf("expected unbounded attempts, got %d", cfg.MaxAttempts)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(mapLookup(map[string]string{
		"CINEMA_ROWS":         "8",
		"CINEMA_COLS":         " 12 ",
		"CINEMA_MAX_ATTEMPTS": "3",
		"CINEMA_CATALOG":      "/tmp/catalog.json",
		"CINEMA_LOG_LEVEL":    "debug",
	}), nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Rows != 8 || cfg.Cols != 12 || cfg.MaxAttempts != 3 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.CatalogPath != "/tmp/catalog.json" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestApplyEnv_InvalidInt(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(mapLookup(map[string]string{"CINEMA_ROWS": "five"}), nil)
	if err == nil {
		t.Fatal("expected error for non-numeric rows")
	}
}

func TestApplyEnv_FlagsWin(t *testing.T) {
	cfg := Default()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse([]string{"--rows", "3"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	err := cfg.ApplyEnv(mapLookup(map[string]string{
		"CINEMA_ROWS": "9",
		"CINEMA_COLS": "4",
	}), fs.Changed)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Rows != 3 {
		t.Fatalf("expected flag rows 3, got %d", cfg.Rows)
	}
	if cfg.Cols != 4 {
		t.Fatalf("expected env cols 4, got %d", cfg.Cols)
	}
}

func TestValidate(t *testing.T) {
	cases := []Config{
		{Rows: 0, Cols: 10},
		{Rows: 5, Cols: 0},
		{Rows: 5, Cols: 10, MaxAttempts: -1},
	}
	for _, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("CINEMA_TEST_DOTENV=7\n"), 0o644); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	t.Setenv("CINEMA_TEST_DOTENV", "")
	os.Unsetenv("CINEMA_TEST_DOTENV")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got := os.Getenv("CINEMA_TEST_DOTENV"); got != "7" {
		t.Fatalf("expected 7, got %q", got)
	}
}
