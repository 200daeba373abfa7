package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Variables carry the GETLINE_ prefix (e.g. GETLINE_LOG_LEVEL).
type EnvConfig struct {
	// LogLevel is the log verbosity level.
	// Env: GETLINE_LOG_LEVEL (default: WARN)
	LogLevel string `envconfig:"LOG_LEVEL" default:"WARN"`

	// LogFormat is the log output format (pretty or json).
	// Env: GETLINE_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// MaxLineBytes is the longest input line accepted.
	// Env: GETLINE_MAX_LINE_BYTES (default: 1048576)
	MaxLineBytes int `envconfig:"MAX_LINE_BYTES" default:"1048576"`

	// NumberLines prefixes each output line with its line number.
	// Env: GETLINE_NUMBER_LINES (default: false)
	NumberLines bool `envconfig:"NUMBER_LINES" default:"false"`
}

// LoadFromEnv loads configuration from GETLINE_* environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(DefaultEnvPrefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize fills in defaults for empty or out-of-range values.
func (e EnvConfig) Normalize() EnvConfig {
	e.LogLevel = strings.ToUpper(strings.TrimSpace(e.LogLevel))
	if e.LogLevel == "" {
		e.LogLevel = DefaultLogLevel
	}
	if e.MaxLineBytes <= 0 {
		e.MaxLineBytes = DefaultMaxLineBytes
	}
	return e
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	return NewAppConfigWithOptions(
		WithLogLevel(e.LogLevel),
		WithLogFormat(ParseLogFormat(e.LogFormat)),
		WithMaxLineBytes(e.MaxLineBytes),
		WithNumberLines(e.NumberLines),
	)
}
