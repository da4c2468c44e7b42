package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Extractor strategies.
const (
	StrategyExec    = "exec"
	StrategyLibrary = "library"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `yaml:"host" envconfig:"SERVER_HOST"`
	Port         int           `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	// AllowedOrigin is sent as Access-Control-Allow-Origin.
	AllowedOrigin string `yaml:"allowed_origin" envconfig:"SERVER_ALLOWED_ORIGIN"`
	// ExposeErrorDetails adds raw extractor diagnostics to 500 responses.
	ExposeErrorDetails bool `yaml:"expose_error_details" envconfig:"SERVER_EXPOSE_ERROR_DETAILS"`
}

// ExtractorConfig holds yt-dlp invocation configuration.
type ExtractorConfig struct {
	Strategy          string        `yaml:"strategy" envconfig:"EXTRACTOR_STRATEGY"`
	Binary            string        `yaml:"binary" envconfig:"EXTRACTOR_BINARY"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"EXTRACTOR_TIMEOUT"`
	PreferFreeFormats bool          `yaml:"prefer_free_formats" envconfig:"EXTRACTOR_PREFER_FREE_FORMATS"`
	SkipDashManifest  bool          `yaml:"skip_dash_manifest" envconfig:"EXTRACTOR_SKIP_DASH_MANIFEST"`
	// AutoInstall downloads a yt-dlp build at startup (library strategy only).
	AutoInstall bool `yaml:"auto_install" envconfig:"EXTRACTOR_AUTO_INSTALL"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL"`
}

// Default returns the configuration used when neither file nor environment set a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          4000,
			ReadTimeout:   30 * time.Second,
			WriteTimeout:  2 * time.Minute,
			AllowedOrigin: "*",
		},
		Extractor: ExtractorConfig{
			Strategy:          StrategyExec,
			Binary:            "yt-dlp",
			Timeout:           60 * time.Second,
			PreferFreeFormats: true,
			SkipDashManifest:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from file and environment variables.
// Environment variables override file values, which override defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables. No default tags: unset variables
	// must leave file values alone.
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Extractor.Strategy {
	case StrategyExec, StrategyLibrary:
	default:
		return fmt.Errorf("EXTRACTOR_STRATEGY must be %q or %q, got %q", StrategyExec, StrategyLibrary, c.Extractor.Strategy)
	}
	if c.Extractor.Binary == "" && !(c.Extractor.Strategy == StrategyLibrary && c.Extractor.AutoInstall) {
		return fmt.Errorf("EXTRACTOR_BINARY is required")
	}
	if c.Extractor.AutoInstall && c.Extractor.Strategy != StrategyLibrary {
		return fmt.Errorf("EXTRACTOR_AUTO_INSTALL requires the %q strategy", StrategyLibrary)
	}
	if c.Extractor.Timeout <= 0 {
		return fmt.Errorf("EXTRACTOR_TIMEOUT must be positive")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SlogLevel maps the configured level name to a slog.Level.
func (c *LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error", c.Level)
}
