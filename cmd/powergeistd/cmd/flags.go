// Package cmd provides the subcommands of the powergeistd binary.
package cmd

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/mfulz/powergeist/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

// BindFlags registers the flags shared by every subcommand on root.
func BindFlags(root *cobra.Command) {
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to powergeist.yaml")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")
}

// loadConfig reads .env from the working directory, then the YAML config.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logger.Level = logLevel
	}
	return cfg, nil
}
