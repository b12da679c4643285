package config

import (
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds each request to the server.
	DefaultTimeout = 30 * time.Second
	// DefaultOutput is the default output format.
	DefaultOutput = "table"
	// DefaultLogLevel keeps diagnostics quiet unless something goes wrong.
	DefaultLogLevel = "WARN"
	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"
)

// defaultValues registers every key with viper so environment overrides
// work without a config file.
func defaultValues() map[string]any {
	return map[string]any{
		"server_url":     "",
		"timeout":        DefaultTimeout,
		"output":         DefaultOutput,
		"color":          true,
		"logging.level":  DefaultLogLevel,
		"logging.format": DefaultLogFormat,
	}
}

// ApplyDefaults sets default values for any unspecified configuration fields.
// Zero values are replaced; explicit values are preserved. Color is left
// alone since false is a meaningful choice.
func ApplyDefaults(cfg *Config) {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	cfg.Output = strings.ToLower(cfg.Output)
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")

	applyLoggingDefaults(&cfg.Logging)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = DefaultLogLevel
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = DefaultLogFormat
	}
	cfg.Format = strings.ToLower(cfg.Format)
}

// GetDefaultConfig returns a Config struct with all default values applied.
func GetDefaultConfig() *Config {
	cfg := &Config{Color: true}
	ApplyDefaults(cfg)
	return cfg
}
