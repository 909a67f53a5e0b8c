// Package configcli handles loading the local powerctl configuration: which
// daemon socket to talk to and how to log.
package configcli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mfulz/powergeist/internal/configloader"
	"github.com/mfulz/powergeist/internal/logging"
	"github.com/spf13/viper"
)

// Config holds the entire client-side powerctl configuration.
type Config struct {
	Network string         `mapstructure:"network"` // "unix" or "tcp"
	Address string         `mapstructure:"address"` // socket path or host:port
	Logger  logging.Config `mapstructure:"log"`
}

// LoadConfig reads powerctl.yaml if one is found and applies POWERGEIST_CTL_*
// overrides. Without a file the client talks to the default unix socket.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("network", "unix")
	v.SetDefault("address", "/tmp/powergeist.sock")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.to_stderr", true)
	v.SetEnvPrefix("POWERGEIST_CTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		resolved, err := configloader.ResolveConfigPath("powerctl", "powerctl.yaml")
		if err != nil && !errors.Is(err, configloader.ErrNoConfig) {
			return nil, err
		}
		path = resolved
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	configloader.ReplaceConfig(&cfg)
	return &cfg, nil
}
