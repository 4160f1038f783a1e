// Package config loads service configuration from an optional TOML file,
// environment overrides, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/msomdec/rms-content/internal/logging"
	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultConfigFile is read when EnvConfigFile is unset. A missing
	// default file is not an error.
	DefaultConfigFile = "config.toml"

	EnvConfigFile = "RMS_CONFIG"
	EnvLogLevel   = "LOG_LEVEL"
	EnvLogFormat  = "LOG_FORMAT"
)

// Config is the root service configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Assets   AssetsConfig   `toml:"assets"`
	Auth     AuthConfig     `toml:"auth"`
	Logging  logging.Config `toml:"logging"`
}

// Load reads the configuration file and finalizes the result.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv(EnvConfigFile)
	if !explicit {
		path = DefaultConfigFile
	}

	cfg, err := ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg = &Config{}
		} else {
			return nil, err
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile parses a TOML configuration file without finalizing it.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates
// every section.
func (c *Config) Finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Assets.Finalize(); err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	if err := c.Auth.Finalize(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Logging.Finalize(&logging.Env{Level: EnvLogLevel, Format: EnvLogFormat}); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
