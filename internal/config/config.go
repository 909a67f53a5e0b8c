// Package config provides loading and parsing of the powergeistd configuration
// file using Viper. It defines the full configuration schema, its defaults
// and the POWERGEIST_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mfulz/powergeist/internal/configloader"
	"github.com/mfulz/powergeist/internal/logging"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// Subsystem is the directory below ~/.powergeist searched for the config.
	Subsystem = "powergeistd"
	// FileName is the default config file name.
	FileName = "powergeist.yaml"
	// EnvPrefix prefixes every environment override, e.g. POWERGEIST_HTTP_PORT.
	EnvPrefix = "POWERGEIST"
)

// Config represents the full structure of the powergeistd configuration file.
type Config struct {
	Logger  logging.Config `mapstructure:"log" yaml:"log"`
	HTTP    HTTPConfig     `mapstructure:"http" yaml:"http"`
	Control ControlConfig  `mapstructure:"control" yaml:"control"`
	Power   PowerConfig    `mapstructure:"power" yaml:"power"`
	Volume  VolumeConfig   `mapstructure:"volume" yaml:"volume"`
}

// HTTPConfig configures the web page and JSON API listener.
type HTTPConfig struct {
	Bind        string   `mapstructure:"bind" yaml:"bind"`
	Port        int      `mapstructure:"port" yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
	Metrics     bool     `mapstructure:"metrics" yaml:"metrics"` // serve /metrics
	Events      bool     `mapstructure:"events" yaml:"events"`   // serve /api/events
}

// Addr returns the listen address of the HTTP server.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Bind, h.Port)
}

// ControlConfig defines how powerctl communicates with the daemon.
type ControlConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"`     // "unix" or "tcp"
	Listen  string `mapstructure:"listen" yaml:"listen"` // socket path or host:port
}

// PowerConfig selects the platform and how commands are launched.
type PowerConfig struct {
	Platform      string        `mapstructure:"platform" yaml:"platform"` // "auto" or a family name
	Launcher      string        `mapstructure:"launcher" yaml:"launcher"` // "exec" or "dryrun"
	ShutdownDelay time.Duration `mapstructure:"shutdown_delay" yaml:"shutdown_delay"`
}

// MarshalYAML writes the delay in its human readable form.
func (p PowerConfig) MarshalYAML() (any, error) {
	return map[string]any{
		"platform":       p.Platform,
		"launcher":       p.Launcher,
		"shutdown_delay": p.ShutdownDelay.String(),
	}, nil
}

// VolumeConfig holds volume related settings.
type VolumeConfig struct {
	Step int `mapstructure:"step" yaml:"step"` // default amount for increase/decrease
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Logger: logging.DefaultConfig(),
		HTTP: HTTPConfig{
			Bind:        "0.0.0.0",
			Port:        7777,
			CORSOrigins: []string{"*"},
			Metrics:     true,
			Events:      true,
		},
		Control: ControlConfig{
			Enabled: true,
			Mode:    "unix",
			Listen:  "/tmp/powergeist.sock",
		},
		Power: PowerConfig{
			Platform:      "auto",
			Launcher:      "exec",
			ShutdownDelay: 60 * time.Second,
		},
		Volume: VolumeConfig{Step: 2},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.level", d.Logger.Level)
	v.SetDefault("log.format", d.Logger.Format)
	v.SetDefault("log.to_stdout", d.Logger.ToStdout)
	v.SetDefault("log.to_stderr", d.Logger.ToStderr)
	v.SetDefault("log.to_file", d.Logger.ToFile)
	v.SetDefault("log.file", d.Logger.FilePath)
	v.SetDefault("log.max_size", d.Logger.MaxSizeMB)
	v.SetDefault("log.max_age", d.Logger.MaxAge)
	v.SetDefault("log.max_backups", d.Logger.MaxBackups)
	v.SetDefault("log.compress", d.Logger.Compress)

	v.SetDefault("http.bind", d.HTTP.Bind)
	v.SetDefault("http.port", d.HTTP.Port)
	v.SetDefault("http.cors_origins", d.HTTP.CORSOrigins)
	v.SetDefault("http.metrics", d.HTTP.Metrics)
	v.SetDefault("http.events", d.HTTP.Events)

	v.SetDefault("control.enabled", d.Control.Enabled)
	v.SetDefault("control.mode", d.Control.Mode)
	v.SetDefault("control.listen", d.Control.Listen)

	v.SetDefault("power.platform", d.Power.Platform)
	v.SetDefault("power.launcher", d.Power.Launcher)
	v.SetDefault("power.shutdown_delay", d.Power.ShutdownDelay)

	v.SetDefault("volume.step", d.Volume.Step)
}

// Load reads the configuration from path. An empty path is resolved with
// configloader.ResolveConfigPath; if nothing is found the defaults apply.
// Environment overrides are applied in both cases. The result is registered
// with configloader.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		resolved, err := configloader.ResolveConfigPath(Subsystem, FileName)
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
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configloader.ReplaceConfig(&cfg)
	return &cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	if c.Control.Enabled && c.Control.Mode != "unix" && c.Control.Mode != "tcp" {
		return fmt.Errorf("control.mode must be unix or tcp, got %q", c.Control.Mode)
	}
	if c.Power.ShutdownDelay < 0 {
		return fmt.Errorf("power.shutdown_delay must not be negative")
	}
	if c.Volume.Step < 1 || c.Volume.Step > 100 {
		return fmt.Errorf("volume.step must be within 1..100, got %d", c.Volume.Step)
	}
	return nil
}

// WriteDefault writes the default configuration as YAML to w.
func WriteDefault(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Default()); err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	return enc.Close()
}
