package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when present and TRANSIT_CONFIG is not set
const DefaultFile = "transit.yml"

// Config holds the file locations and settings shared by the pipeline stages
type Config struct {
	// Database
	DatabasePath string `yaml:"database" validate:"required"`

	// Input feed
	FeedDir string `yaml:"feed_dir" validate:"required"`

	// Cleaned CSV output
	OutputDir string `yaml:"output_dir" validate:"required"`

	// Reporting
	TopN int `yaml:"top_n" validate:"gt=0"`

	// Logging
	LogFormat string `yaml:"log_format" validate:"omitempty,oneof=console JSON json"`
	Debug     bool   `yaml:"debug"`
}

// Load builds the configuration from defaults, then an optional YAML file,
// then environment variables. A .env file in the working directory is
// applied to the environment first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath: "transit.db",
		FeedDir:      ".",
		OutputDir:    "cleaned_data",
		TopN:         10,
		LogFormat:    "console",
	}

	path, explicit := os.LookupEnv("TRANSIT_CONFIG")
	if !explicit || path == "" {
		path, explicit = DefaultFile, false
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg.DatabasePath = getEnv("SQLITE_DATABASE", cfg.DatabasePath)
	cfg.FeedDir = getEnv("GTFS_DIR", cfg.FeedDir)
	cfg.OutputDir = getEnv("CLEANED_DATA_DIR", cfg.OutputDir)
	cfg.TopN = getEnvInt("REPORT_TOP_N", cfg.TopN)
	cfg.LogFormat = getEnv("TRANSIT_LOG_FORMAT", cfg.LogFormat)
	if debug := os.Getenv("TRANSIT_DEBUG"); debug != "" {
		cfg.Debug = debug == "YES"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}
