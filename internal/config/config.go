// Package config provides application configuration.
package config

import "strings"

// Default configuration values.
const (
	DefaultLogLevel     = "WARN"
	DefaultMaxLineBytes = 1024 * 1024
	DefaultEnvPrefix    = "GETLINE"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the settings for one getline invocation.
type AppConfig struct {
	logLevel     string
	logFormat    LogFormat
	maxLineBytes int
	numberLines  bool
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		logLevel:     DefaultLogLevel,
		logFormat:    LogFormatPretty,
		maxLineBytes: DefaultMaxLineBytes,
	}
}

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// MaxLineBytes returns the longest input line accepted, in bytes.
func (c AppConfig) MaxLineBytes() int { return c.maxLineBytes }

// NumberLines returns whether output lines are prefixed with their number.
func (c AppConfig) NumberLines() bool { return c.numberLines }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = strings.ToUpper(level) }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithMaxLineBytes sets the line length limit. Non-positive values are ignored.
func WithMaxLineBytes(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.maxLineBytes = n
		}
	}
}

// WithNumberLines enables line number prefixes.
func WithNumberLines(enabled bool) AppConfigOption {
	return func(c *AppConfig) { c.numberLines = enabled }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	cfg := NewAppConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Apply returns a copy of the config with the options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ParseLogFormat parses a log format string. Unknown values fall back to pretty.
func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
