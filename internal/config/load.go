package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvCacheDir      = "ISOGEN_CACHE_DIR"
	EnvDataDir       = "ISOGEN_DATA_DIR"
	EnvOutputDir     = "ISOGEN_OUTPUT_DIR"
	EnvFeatures      = "ISOGEN_FEATURES"
	EnvLogLevel      = "ISOGEN_LOG_LEVEL"
	EnvCountriesURL  = "ISOGEN_COUNTRIES_URL"
	EnvTimezonesURL  = "ISOGEN_TIMEZONES_URL"
	EnvTimezoneDBKey = "ISOGEN_TIMEZONEDB_KEY"
)

// Load builds the configuration from defaults, the optional YAML file at
// path (or $ISOGEN_CONFIG when path is empty), a .env file in the working
// directory, and finally the environment.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// .env is optional
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setFromEnv(&c.CacheDir, EnvCacheDir)
	setFromEnv(&c.DataDir, EnvDataDir)
	setFromEnv(&c.OutputDir, EnvOutputDir)
	setFromEnv(&c.LogLevel, EnvLogLevel)
	setFromEnv(&c.Sources.CountriesURL, EnvCountriesURL)
	setFromEnv(&c.Sources.TimezonesURL, EnvTimezonesURL)
	setFromEnv(&c.Sources.TimezoneDBKey, EnvTimezoneDBKey)

	if v := strings.TrimSpace(os.Getenv(EnvFeatures)); v != "" {
		if err := c.Features.Set(v); err != nil {
			return fmt.Errorf("%s: %w", EnvFeatures, err)
		}
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.CacheDir == "" {
		errs = append(errs, errors.New("cache_dir is empty"))
	}
	if c.Package == "" {
		errs = append(errs, errors.New("package is empty"))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log_level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}
