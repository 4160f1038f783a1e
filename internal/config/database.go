package config

import (
	"fmt"
	"os"
)

const (
	EnvDatabaseDriver = "RMS_DATABASE_DRIVER"
	EnvDatabasePath   = "RMS_DATABASE_PATH"
	EnvDatabaseDSN    = "RMS_DATABASE_DSN"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DatabaseConfig selects the relational backend. Path applies to SQLite,
// DSN to Postgres.
type DatabaseConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	DSN    string `toml:"dsn"`
}

func (c *DatabaseConfig) Finalize() error {
	if v := os.Getenv(EnvDatabaseDriver); v != "" {
		c.Driver = v
	}
	if v := os.Getenv(EnvDatabasePath); v != "" {
		c.Path = v
	}
	if v := os.Getenv(EnvDatabaseDSN); v != "" {
		c.DSN = v
	}
	if c.Driver == "" {
		c.Driver = DriverSQLite
	}
	if c.Path == "" {
		c.Path = "rms-content.db"
	}

	switch c.Driver {
	case DriverSQLite:
		return nil
	case DriverPostgres:
		if c.DSN == "" {
			return fmt.Errorf("dsn required for the postgres driver")
		}
		return nil
	default:
		return fmt.Errorf("unknown driver %q (must be sqlite or postgres)", c.Driver)
	}
}
