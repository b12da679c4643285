package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		tag    string
	}{
		{"log level", func(c *Config) { c.Logging.Level = "INVALID" }, "oneof"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "oneof"},
		{"output", func(c *Config) { c.Output = "csv" }, "oneof"},
		{"server url", func(c *Config) { c.ServerURL = "not a url" }, "url"},
		{"timeout", func(c *Config) { c.Timeout = -1 }, "gt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), "'"+tt.tag+"'") {
				t.Errorf("Expected %q validation error, got: %v", tt.tag, err)
			}
		})
	}
}
