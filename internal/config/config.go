// Package config provides configuration management for PulseCheck.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lvonguyen/pulsecheck/internal/analysis"
	"github.com/lvonguyen/pulsecheck/internal/api/gateway"
	"github.com/lvonguyen/pulsecheck/internal/observability"
	"github.com/lvonguyen/pulsecheck/internal/oracle"
)

// Config holds all PulseCheck configuration.
type Config struct {
	Server    ServerConfig            `yaml:"server"`
	Redis     RedisConfig             `yaml:"redis"`
	Oracle    oracle.Config           `yaml:"oracle"`
	Scoring   ScoringConfig           `yaml:"scoring"`
	RateLimit gateway.RateLimitConfig `yaml:"rate_limit"`
	Telemetry observability.Config    `yaml:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RedisConfig holds Redis connection settings. Redis is optional; with no
// addr configured the server runs without rate limiting.
type RedisConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Addr        string `yaml:"addr"`
	PasswordEnv string `yaml:"password_env"`
	DB          int    `yaml:"db"`
	PoolSize    int    `yaml:"pool_size"`
}

// ScoringConfig holds scoring engine settings.
type ScoringConfig struct {
	RiskLevels   string `yaml:"risk_levels"` // three, five
	BatchWorkers int    `yaml:"batch_workers"`
	MaxBatchSize int    `yaml:"max_batch_size"`
	TopConcerns  int    `yaml:"top_concerns"`
}

// LevelTable returns the configured level table.
func (s ScoringConfig) LevelTable() analysis.LevelTable {
	if s.RiskLevels == "five" {
		return analysis.FiveLevels()
	}
	return analysis.ThreeLevels()
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{
			Enabled:     false,
			Addr:        "localhost:6379",
			PasswordEnv: "REDIS_PASSWORD",
			DB:          0,
			PoolSize:    10,
		},
		Oracle: oracle.DefaultConfig(),
		Scoring: ScoringConfig{
			RiskLevels:   "three",
			BatchWorkers: 8,
			MaxBatchSize: 50,
			TopConcerns:  5,
		},
		RateLimit: gateway.RateLimitConfig{
			Tiers:          gateway.DefaultTiers(),
			Endpoints:      gateway.DefaultEndpointLimits(),
			IncludeHeaders: true,
		},
		Telemetry: observability.Config{
			ServiceName:    "pulsecheck",
			Environment:    "development",
			LogLevel:       "info",
			LogFormat:      "json",
			MetricsEnabled: true,
		},
	}
}
