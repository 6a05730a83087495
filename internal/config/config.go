// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"recipe-pricing/internal/logging"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "RECIPE_PRICING_"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Tenant selects the default business profile
	Tenant TenantConfig `json:"tenant"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// TenantConfig identifies which defaults apply when a request names none
type TenantConfig struct {
	// BusinessType is one of the closed business-type identifiers
	BusinessType string `json:"business_type"`

	// Country is one of the closed country identifiers
	Country string `json:"country"`

	// SettingsFile is an optional HCL tenant settings file
	SettingsFile string `json:"settings_file,omitempty"`
}

// ServerConfig contains HTTP settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// MetricsNamespace prefixes Prometheus metric names
	MetricsNamespace string `json:"metrics_namespace"`

	// RequestTimeoutSeconds bounds handler execution
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
}

// RequestTimeout returns the request timeout as a duration
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// NoColor disables ANSI colors
	NoColor bool `json:"no_color"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Tenant: TenantConfig{
			BusinessType: "Restauração tradicional",
			Country:      "Portugal",
		},
		Server: ServerConfig{
			Addr:                  ":8080",
			MetricsNamespace:      "recipe_pricing",
			RequestTimeoutSeconds: 10,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.recipe-pricing.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".recipe-pricing.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return config, nil
}

// ApplyEnv overlays RECIPE_PRICING_* environment variables on c.
func (c *Config) ApplyEnv() error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string { return s }), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	setString(k, "BUSINESS_TYPE", &c.Tenant.BusinessType)
	setString(k, "COUNTRY", &c.Tenant.Country)
	setString(k, "SETTINGS_FILE", &c.Tenant.SettingsFile)
	setString(k, "ADDR", &c.Server.Addr)
	setString(k, "METRICS_NAMESPACE", &c.Server.MetricsNamespace)
	setString(k, "OUTPUT_FORMAT", &c.Output.DefaultFormat)
	setString(k, "LOG_LEVEL", &c.Logging.Level)
	setString(k, "LOG_FORMAT", &c.Logging.Format)
	setString(k, "LOG_OUTPUT", &c.Logging.Output)

	if raw := strings.TrimSpace(k.String(EnvPrefix + "REQUEST_TIMEOUT_SECONDS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("%sREQUEST_TIMEOUT_SECONDS must be a positive integer, got %q", EnvPrefix, raw)
		}
		c.Server.RequestTimeoutSeconds = n
	}
	if raw := strings.TrimSpace(k.String(EnvPrefix + "NO_COLOR")); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%sNO_COLOR must be a boolean, got %q", EnvPrefix, raw)
		}
		c.Output.NoColor = b
	}
	return nil
}

func setString(k *koanf.Koanf, name string, dst *string) {
	if v := strings.TrimSpace(k.String(EnvPrefix + name)); v != "" {
		*dst = v
	}
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
