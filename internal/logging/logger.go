// Package logging provides centralized structured logging for powergeist.
// It wraps zap.Logger and allows runtime-configurable level, output streams, and file logging.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/mfulz/powergeist/internal/configloader"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config represents the logging configuration as defined in the global YAML config.
type Config struct {
	Level      string `mapstructure:"level" yaml:"level"`             // "debug", "info", "warn", "error"
	Format     string `mapstructure:"format" yaml:"format"`           // "console" or "json"
	ToStdout   bool   `mapstructure:"to_stdout" yaml:"to_stdout"`     // Enable output to stdout
	ToStderr   bool   `mapstructure:"to_stderr" yaml:"to_stderr"`     // Enable output to stderr
	ToFile     bool   `mapstructure:"to_file" yaml:"to_file"`         // Enable output to file
	FilePath   string `mapstructure:"file" yaml:"file"`               // Log file path, e.g. /var/log/powergeist.log
	MaxSizeMB  int    `mapstructure:"max_size" yaml:"max_size"`       // Max size before rotation (in MB)
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`         // Max age of logs (in days)
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"` // Number of rotated backups to keep
	Compress   bool   `mapstructure:"compress" yaml:"compress"`       // Gzip compress old log files
}

// DefaultConfig is what the logger uses before any config file was read.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		Format:   "console",
		ToStdout: true,
	}
}

// Log is the globally accessible sugared logger instance.
var Log *zap.SugaredLogger

// Init rebuilds Log from the registered *Config.
func Init() error {
	logger, err := build(*configloader.MustGetConfig[*Config]())
	if err != nil {
		return err
	}
	Log = logger.Sugar()
	return nil
}

// Apply registers cfg as the active logging config and rebuilds the logger.
func Apply(cfg Config) error {
	if _, err := encoderFor(cfg.Format); err != nil {
		return err
	}
	configloader.ReplaceConfig(&cfg)
	return Init()
}

// Sync flushes buffered log entries.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func encoderFor(format string) (zapcore.Encoder, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	switch format {
	case "", "console":
		return zapcore.NewConsoleEncoder(encoderCfg), nil
	case "json":
		return zapcore.NewJSONEncoder(encoderCfg), nil
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}
}

func build(cfg Config) (*zap.Logger, error) {
	encoder, err := encoderFor(cfg.Format)
	if err != nil {
		return nil, err
	}

	level := zapcore.InfoLevel
	_ = level.Set(cfg.Level) // invalid level keeps InfoLevel

	var sinks []io.Writer
	if cfg.ToStdout {
		sinks = append(sinks, os.Stdout)
	}
	if cfg.ToStderr {
		sinks = append(sinks, os.Stderr)
	}
	if cfg.ToFile && cfg.FilePath != "" {
		sinks = append(sinks, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}
	if len(sinks) == 0 {
		sinks = append(sinks, os.Stdout)
	}

	cores := make([]zapcore.Core, 0, len(sinks))
	for _, w := range sinks {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(w), level))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func init() {
	cfg := DefaultConfig()
	configloader.RegisterConfig(&cfg)
	_ = Init()
}
