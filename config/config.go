// Package config loads store configuration from an optional TOML file
// with environment variable overrides. The environment always wins, so
// deployments can point an unmodified config at a different root or
// limit.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Environment variables recognized by ApplyEnv.
const (
	// EnvRootDir overrides the store root directory.
	EnvRootDir = "PLAYSHARE_ROOT"

	// EnvQuotaBytes overrides the soft storage limit in bytes.
	// Absent or zero disables enforcement.
	EnvQuotaBytes = "PLAYSHARE_QUOTA_BYTES"
)

// Config holds the persistence layer settings.
type Config struct {
	// RootDir is the store root; links/, blobs/ and locks/ live under it.
	RootDir string `toml:"root_dir"`

	// QuotaBytes is the soft storage limit (0 = unlimited).
	QuotaBytes int64 `toml:"quota_bytes"`

	// QuotaTTLSeconds caches the measured byte count for this long
	// (0 = recompute on every write).
	QuotaTTLSeconds int `toml:"quota_ttl_seconds"`

	// AuditLog enables the bbolt revocation journal at
	// <RootDir>/audit.db.
	AuditLog bool `toml:"audit_log"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the built-in defaults. The root defaults to
// ~/.playshare/store.
func DefaultConfig() Config {
	root := ".playshare/store"
	if home, err := os.UserHomeDir(); err == nil {
		root = filepath.Join(home, ".playshare", "store")
	}
	return Config{
		RootDir:  root,
		AuditLog: true,
		LogLevel: "info",
	}
}

// ConfigPath returns the default config file location for a data directory.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config.toml")
}

// LoadConfig reads a TOML config file and applies environment overrides.
// A missing file is not an error; defaults plus environment apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays recognized environment variables onto the config.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvRootDir); v != "" {
		c.RootDir = v
	}
	if v := os.Getenv(EnvQuotaBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnvValue, EnvQuotaBytes, v)
		}
		c.QuotaBytes = n
	}
	return nil
}

// SaveConfig writes the config as TOML.
func SaveConfig(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
