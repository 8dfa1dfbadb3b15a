package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/playshareorg/libplayshare-go/audit"
	"github.com/playshareorg/libplayshare-go/config"
	"github.com/playshareorg/libplayshare-go/quota"
	"github.com/playshareorg/libplayshare-go/share"
)

// commandContext carries lazily-loaded config shared by all subcommands.
type commandContext struct {
	configFlag *string
	rootFlag   *string

	cfg *config.Config
}

func newCommandContext(configFlag, rootFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, rootFlag: rootFlag}
}

// ensureConfig loads the config file (default location if unset) and
// applies flag overrides.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	path := *c.configFlag
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = config.ConfigPath(filepath.Join(home, ".playshare"))
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if *c.rootFlag != "" {
		cfg.RootDir = *c.rootFlag
	}
	c.cfg = &cfg
	return c.cfg, nil
}

// openStore builds the store with its quota enforcer, audit log and
// logger from the loaded config. Callers must Close the store.
func (c *commandContext) openStore() (*share.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	opts := share.Options{
		Logger: newLogger(cfg.LogLevel),
	}
	if cfg.QuotaBytes > 0 {
		ttl := time.Duration(cfg.QuotaTTLSeconds) * time.Second
		opts.Quota = quota.New(cfg.RootDir, cfg.QuotaBytes, ttl)
	}
	if cfg.AuditLog {
		log, err := audit.Open(filepath.Join(cfg.RootDir, "audit.db"))
		if err != nil {
			return nil, err
		}
		opts.Audit = log
	}

	return share.Open(cfg.RootDir, opts)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var rootFlag string

	ctx := newCommandContext(&configFlag, &rootFlag)

	rootCmd := &cobra.Command{
		Use:           "playshare",
		Short:         "Administer the shared-playlist blob store",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "configuration file path")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "store root directory (overrides config)")

	rootCmd.AddCommand(newCreateCommand(ctx))
	rootCmd.AddCommand(newReadCommand(ctx))
	rootCmd.AddCommand(newRevokeCommand(ctx))
	rootCmd.AddCommand(newStatsCommand(ctx))
	rootCmd.AddCommand(newGCCommand(ctx))

	return rootCmd
}
