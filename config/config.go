package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StrategySequential = "sequential"
	StrategyConcurrent = "concurrent"
)

// Config holds the application configuration
type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Server ServerConfig `mapstructure:"server"`
	Render RenderConfig `mapstructure:"render"`
	Mirror MirrorConfig `mapstructure:"mirror"`
	Log    LogConfig    `mapstructure:"log"`
}

// APIConfig points the client at the REST host
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig holds the page server settings
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// RenderConfig selects how posts are built
type RenderConfig struct {
	Strategy    string `mapstructure:"strategy"`
	Concurrency int    `mapstructure:"concurrency"`
}

// MirrorConfig holds the local API mirror settings
type MirrorConfig struct {
	DBPath string `mapstructure:"db_path"`
	Addr   string `mapstructure:"addr"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from an optional config.yaml and DIRECTORY_*
// environment variables. paths are searched in order; with none given the
// working directory and ./config are used.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("api.base_url", "https://jsonplaceholder.typicode.com")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("render.strategy", StrategySequential)
	v.SetDefault("render.concurrency", 4)
	v.SetDefault("mirror.db_path", "data/badger")
	v.SetDefault("mirror.addr", ":8081")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("DIRECTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	switch c.Render.Strategy {
	case StrategySequential, StrategyConcurrent:
	default:
		return fmt.Errorf("unknown render.strategy %q", c.Render.Strategy)
	}
	if c.Render.Concurrency < 1 {
		c.Render.Concurrency = 1
	}
	return nil
}
