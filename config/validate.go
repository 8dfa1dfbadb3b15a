package config

import "strings"

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within
// acceptable ranges and returns the first error encountered, or nil.
func ValidateConfig(cfg Config) error {
	if cfg.RootDir == "" {
		return ErrEmptyRootDir
	}
	if cfg.QuotaBytes < 0 {
		return ErrNegativeQuota
	}
	if cfg.QuotaTTLSeconds < 0 {
		return ErrNegativeQuotaTTL
	}
	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}
	return nil
}
