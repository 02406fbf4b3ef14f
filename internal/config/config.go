// Package config loads the settings of the smartpath binaries from a YAML
// file, an optional .env file and SMARTPATH_* environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Data    DataConfig    `yaml:"data"`
	Server  ServerConfig  `yaml:"server"`
	Routing RoutingConfig `yaml:"routing"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
}

// DataConfig points at the station and connection CSV files.
type DataConfig struct {
	Stations string `yaml:"stations"`
	Edges    string `yaml:"edges"`
}

type ServerConfig struct {
	Address        string        `yaml:"address"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

type RoutingConfig struct {
	Workers int `yaml:"workers"` // concurrent pair searches per city query
}

type CacheConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text or json
}

func Default() Config {
	return Config{
		Data: DataConfig{
			Stations: "data/stations.csv",
			Edges:    "data/edges.csv",
		},
		Server: ServerConfig{
			Address:        ":8081",
			AllowedOrigins: []string{"*"},
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   30 * time.Second,
		},
		Routing: RoutingConfig{Workers: 4},
		Cache: CacheConfig{
			TTL:             10 * time.Minute,
			CleanupInterval: 20 * time.Minute,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration. Missing files are not an error; an empty
// path skips the respective step.
func Load(configPath, envFile string) (Config, error) {
	config := Default()

	if configPath != "" {
		if err := loadConfigFile(configPath, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return config, fmt.Errorf("load env file: %w", err)
		}
	}

	if err := loadConfigFromEnv(&config); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, config)
}

func loadConfigFromEnv(config *Config) error {
	if v := os.Getenv("SMARTPATH_STATIONS"); v != "" {
		config.Data.Stations = v
	}
	if v := os.Getenv("SMARTPATH_EDGES"); v != "" {
		config.Data.Edges = v
	}
	if v := os.Getenv("SMARTPATH_ADDR"); v != "" {
		config.Server.Address = v
	}
	if v := os.Getenv("SMARTPATH_WORKERS"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: SMARTPATH_WORKERS: %v", ErrInvalidConfig, err)
		}
		config.Routing.Workers = i
	}
	if v := os.Getenv("SMARTPATH_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	return nil
}

// Validate checks that the configuration can be used to start the service.
func (c Config) Validate() error {
	if c.Data.Stations == "" || c.Data.Edges == "" {
		return fmt.Errorf("%w: data.stations and data.edges are required", ErrInvalidConfig)
	}
	if c.Routing.Workers <= 0 {
		return fmt.Errorf("%w: routing.workers must be positive, got %d", ErrInvalidConfig, c.Routing.Workers)
	}
	if c.Cache.TTL < 0 || c.Cache.CleanupInterval < 0 {
		return fmt.Errorf("%w: cache durations must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func (c LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(c.Level))); err != nil {
		return level, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Level)
	}
	return level, nil
}

// NewLogger creates the process logger. An invalid level falls back to info.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
