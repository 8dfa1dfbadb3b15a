package config

import "errors"

var (
	// ErrEmptyRootDir indicates the store root directory path is empty.
	ErrEmptyRootDir = errors.New("config: store root directory must not be empty")

	// ErrNegativeQuota indicates a negative soft storage limit.
	ErrNegativeQuota = errors.New("config: quota bytes must not be negative")

	// ErrNegativeQuotaTTL indicates a negative quota cache TTL.
	ErrNegativeQuotaTTL = errors.New("config: quota TTL must not be negative")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrInvalidEnvValue indicates an environment override that does not parse.
	ErrInvalidEnvValue = errors.New("config: invalid environment variable value")
)
