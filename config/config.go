// Package config resolves runtime settings from flags, the environment and
// an optional .env file. Flags win over the environment; the environment
// wins over .env; built-in defaults reproduce the classic 5x10 demo.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"cinema-booking-cli/model"
)

const envPrefix = "CINEMA_"

// Config holds every tunable of a booking session.
type Config struct {
	CatalogPath string
	Rows        int
	Cols        int
	MaxAttempts int // per seat slot, 0 means unbounded
	LogLevel    string
	LogFile     string
	TUI         bool
	Plain       bool
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

func Default() Config {
	return Config{
		Rows:     model.DefaultRows,
		Cols:     model.DefaultCols,
		LogLevel: "warn",
	}
}

// LoadDotEnv merges the given .env files (default ".env") into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// BindFlags registers the session flags on fs, writing into c.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.CatalogPath, "catalog", c.CatalogPath, "path to a catalog JSON file")
	fs.IntVar(&c.Rows, "rows", c.Rows, "seat rows per show")
	fs.IntVar(&c.Cols, "cols", c.Cols, "seats per row")
	fs.IntVar(&c.MaxAttempts, "max-attempts", c.MaxAttempts, "attempts per seat before giving up (0 = unbounded)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file instead of stderr")
	fs.BoolVar(&c.TUI, "tui", c.TUI, "run the full-screen interface")
	fs.BoolVar(&c.Plain, "plain", c.Plain, "read plain numbers from stdin even on a terminal")
}

// ApplyEnv fills every setting whose flag was not changed on the command
// line from CINEMA_* variables.
func (c *Config) ApplyEnv(lookup LookupFunc, changed func(flag string) bool) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}

	strs := []struct {
		flag string
		dst  *string
	}{
		{"catalog", &c.CatalogPath},
		{"log-level", &c.LogLevel},
		{"log-file", &c.LogFile},
	}
	for _, s := range strs {
		if changed(s.flag) {
			continue
		}
		if v, ok := lookupEnv(lookup, s.flag); ok {
			*s.dst = v
		}
	}

	ints := []struct {
		flag string
		dst  *int
	}{
		{"rows", &c.Rows},
		{"cols", &c.Cols},
		{"max-attempts", &c.MaxAttempts},
	}
	for _, i := range ints {
		if changed(i.flag) {
			continue
		}
		v, ok := lookupEnv(lookup, i.flag)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid int for %s: %q", envKey(i.flag), v)
		}
		*i.dst = n
	}
	return nil
}

// Validate rejects settings no session can run with.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("seat grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max attempts must not be negative, got %d", c.MaxAttempts)
	}
	return nil
}

func lookupEnv(lookup LookupFunc, flag string) (string, bool) {
	v, ok := lookup(envKey(flag))
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func envKey(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}
