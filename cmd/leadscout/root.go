package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/logger"
)

var version = "0.3.0"

var (
	flagConfig  string
	flagDataDir string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "leadscout",
	Short: "Lead generation engine",
	Long: `LeadScout finds, classifies and archives people and company leads.

Bare invocation starts the HTTP engine; subcommands run one-shot
pipelines against the configured sources.`,
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default <data-dir>/leadscout.yml)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default $LEADSCOUT_DATA_DIR, else .)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

// dataDir resolves the working directory for config, leads files and the
// archive: flag, then env, then the current directory.
func dataDir() string {
	if flagDataDir != "" {
		return flagDataDir
	}
	if env := os.Getenv("LEADSCOUT_DATA_DIR"); env != "" {
		return env
	}
	return "."
}

// bootstrapConfig makes sure the data dir and a user config exist, loads
// the config and returns it with its path. An explicit --data-dir (or
// env) wins over the file's app.data_dir.
func bootstrapConfig() (config.Config, string, error) {
	dir := dataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return config.Config{}, "", fmt.Errorf("data dir: %w", err)
	}

	path := flagConfig
	if path == "" {
		var err error
		path, err = config.EnsureUserConfig(dir, filepath.Join("config", "leadscout.yml"))
		if err != nil {
			return config.Config{}, "", fmt.Errorf("config bootstrap: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", fmt.Errorf("config load (%s): %w", path, err)
	}
	if err := config.OverlaySearches(&cfg, filepath.Join(dir, "searches.yml")); err != nil {
		return config.Config{}, "", fmt.Errorf("searches overlay: %w", err)
	}
	if flagDataDir != "" || os.Getenv("LEADSCOUT_DATA_DIR") != "" {
		cfg.App.DataDir = dir
	}
	return cfg, path, nil
}

// newLogger builds the zap logger for a command. One-shot commands keep
// quiet below warn unless --verbose asks for more.
func newLogger(cfg config.Config, oneShot bool) (*zap.Logger, error) {
	level := cfg.Logging.Level
	if oneShot && level == "" {
		level = "warn"
	}
	if flagVerbose {
		level = "debug"
	}
	return logger.New(cfg.Logging.Env, level)
}

// resolvePath anchors relative filenames in the data dir, matching the
// HTTP API's behavior.
func resolvePath(cfg config.Config, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.App.DataDir, name)
}
