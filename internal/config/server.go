package config

import (
	"fmt"
	"os"
	"time"
)

const EnvServerAddr = "RMS_ADDR"

// ServerConfig holds HTTP server settings. Durations are Go duration strings.
type ServerConfig struct {
	Addr              string `toml:"addr"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`

	readHeaderTimeout time.Duration
	idleTimeout       time.Duration
	shutdownTimeout   time.Duration
}

func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration { return c.readHeaderTimeout }
func (c *ServerConfig) IdleTimeoutDuration() time.Duration       { return c.idleTimeout }
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration   { return c.shutdownTimeout }

func (c *ServerConfig) Finalize() error {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadHeaderTimeout == "" {
		c.ReadHeaderTimeout = "10s"
	}
	if c.IdleTimeout == "" {
		c.IdleTimeout = "120s"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "5s"
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Addr = v
	}

	var err error
	if c.readHeaderTimeout, err = parsePositive("read_header_timeout", c.ReadHeaderTimeout); err != nil {
		return err
	}
	if c.idleTimeout, err = parsePositive("idle_timeout", c.IdleTimeout); err != nil {
		return err
	}
	if c.shutdownTimeout, err = parsePositive("shutdown_timeout", c.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

func parsePositive(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return d, nil
}
