// Package config loads application configuration from an optional YAML file
// with environment variable overrides (OEMINV_ prefix).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"oeminv/internal/analysis"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
}

// AnalysisConfig contains the analysis engine configuration: required
// column names and the inflation rate table.
type AnalysisConfig struct {
	NameColumn           string          `yaml:"name_column" envconfig:"NAME_COLUMN" default:"Material Discription"`
	PriceColumn          string          `yaml:"price_column" envconfig:"PRICE_COLUMN" default:"Unit Price"`
	DefaultInflationRate float64         `yaml:"default_inflation_rate" envconfig:"DEFAULT_INFLATION_RATE" default:"4.5"`
	InflationRates       map[int]float64 `yaml:"inflation_rates"`
}

// RateTable builds the immutable inflation table for this configuration.
// Without explicit overrides the known seeded rates apply.
func (c AnalysisConfig) RateTable() analysis.RateTable {
	if len(c.InflationRates) == 0 {
		if c.DefaultInflationRate == analysis.DefaultInflationRate {
			return analysis.DefaultRateTable()
		}
		return analysis.NewRateTable(nil, c.DefaultInflationRate)
	}
	return analysis.NewRateTable(c.InflationRates, c.DefaultInflationRate)
}

// Load builds configuration from defaults and environment variables, then
// overlays the optional YAML file at path. A missing file is not an error;
// keys the file sets win over the environment.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("OEMINV", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Analysis.NameColumn == "" || c.Analysis.PriceColumn == "" {
		return fmt.Errorf("name and price columns must not be empty")
	}
	return nil
}

// NewLogger builds an slog.Logger for this logging configuration.
func (c LoggingConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch c.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if c.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
