package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// DefaultConfig tests
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.RootDir == "" {
		t.Error("RootDir should not be empty")
	}
	if !strings.Contains(cfg.RootDir, ".playshare") {
		t.Errorf("RootDir %q should live under .playshare", cfg.RootDir)
	}
	if cfg.QuotaBytes != 0 {
		t.Errorf("QuotaBytes default should disable enforcement, got %d", cfg.QuotaBytes)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel default = %q, want info", cfg.LogLevel)
	}
	if !cfg.AuditLog {
		t.Error("AuditLog should default to enabled")
	}
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// SaveConfig / LoadConfig round-trip tests
// ---------------------------------------------------------------------------

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	original := Config{
		RootDir:         "/tmp/test-playshare",
		QuotaBytes:      1 << 30,
		QuotaTTLSeconds: 30,
		AuditLog:        true,
		LogLevel:        "debug",
	}
	if err := SaveConfig(path, original); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded != original {
		t.Errorf("round-trip mismatch: got %+v, want %+v", loaded, original)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("root_dir = [not toml"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error")
	}
}

// ---------------------------------------------------------------------------
// Environment override tests
// ---------------------------------------------------------------------------

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv(EnvRootDir, "/srv/playshare")
	t.Setenv(EnvQuotaBytes, "4096")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.RootDir != "/srv/playshare" {
		t.Errorf("RootDir = %q", cfg.RootDir)
	}
	if cfg.QuotaBytes != 4096 {
		t.Errorf("QuotaBytes = %d", cfg.QuotaBytes)
	}
}

func TestApplyEnv_BadQuota(t *testing.T) {
	t.Setenv(EnvQuotaBytes, "lots")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); !errors.Is(err, ErrInvalidEnvValue) {
		t.Errorf("got %v, want ErrInvalidEnvValue", err)
	}
}

func TestApplyEnv_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveConfig(path, Config{RootDir: "/from/file", LogLevel: "info"}); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvRootDir, "/from/env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.RootDir != "/from/env" {
		t.Errorf("RootDir = %q, want /from/env", cfg.RootDir)
	}
}

// ---------------------------------------------------------------------------
// ValidateConfig tests
// ---------------------------------------------------------------------------

func TestValidateConfig(t *testing.T) {
	base := Config{RootDir: "/srv/playshare", LogLevel: "info"}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"empty root", func(c *Config) { c.RootDir = "" }, ErrEmptyRootDir},
		{"negative quota", func(c *Config) { c.QuotaBytes = -1 }, ErrNegativeQuota},
		{"negative ttl", func(c *Config) { c.QuotaTTLSeconds = -1 }, ErrNegativeQuotaTTL},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"log level case-insensitive", func(c *Config) { c.LogLevel = "DEBUG" }, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			err := ValidateConfig(cfg)
			if tc.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}
