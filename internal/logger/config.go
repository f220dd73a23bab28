package logger

import (
	"log/slog"
	"strings"
)

// Config represents logger configuration
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json, text
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig builds a config for the given environment. Empty level, format
// or version fall back to the environment's defaults, and source locations
// are only attached in development.
func NewConfig(level, format, version, environment string) Config {
	cfg := ForEnvironment(environment)
	if level != "" {
		cfg.Level = level
	}
	if format != "" {
		cfg.Format = format
	}
	if version != "" {
		cfg.Version = version
	}
	return cfg
}

// ForEnvironment returns the defaults for an environment: debug text logs
// with source locations in development, info JSON logs everywhere else.
func ForEnvironment(environment string) Config {
	cfg := Config{
		Level:       LogLevelInfo,
		Format:      LogFormatJSON,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: environment,
	}
	if IsDevelopment(environment) {
		cfg.Level = LogLevelDebug
		cfg.Format = LogFormatText
		cfg.AddSource = true
	}
	if cfg.Environment == "" {
		cfg.Environment = EnvironmentDev
	}
	return cfg
}

// IsDevelopment reports whether environment names a local dev setup.
// An empty environment counts as dev.
func IsDevelopment(environment string) bool {
	switch strings.ToLower(environment) {
	case "", EnvironmentDev, EnvironmentDevelopment:
		return true
	}
	return false
}

// LogLevel converts string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == LogFormatJSON
}

// BaseAttributes returns the attributes stamped on every record
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
