package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvJWTSecret     = "JWT_SECRET"
	EnvBcryptCost    = "BCRYPT_COST"
	EnvCookieSecure  = "COOKIE_SECURE"
	EnvAdminUsername = "RMS_ADMIN_USERNAME"
	EnvAdminPassword = "RMS_ADMIN_PASSWORD"
)

// AuthConfig holds session signing and account bootstrap settings.
type AuthConfig struct {
	JWTSecret  string `toml:"jwt_secret"`
	BcryptCost int    `toml:"bcrypt_cost"`
	// CookieSecure defaults to true; disable only for local development.
	CookieSecure  *bool  `toml:"cookie_secure"`
	AdminUsername string `toml:"admin_username"`
	AdminPassword string `toml:"admin_password"`
}

// SecureCookies reports whether the session cookie carries the Secure flag.
func (c *AuthConfig) SecureCookies() bool {
	return c.CookieSecure == nil || *c.CookieSecure
}

// BootstrapAdmin reports whether an admin account should be ensured at start.
func (c *AuthConfig) BootstrapAdmin() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

func (c *AuthConfig) Finalize() error {
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv(EnvBcryptCost); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvBcryptCost, err)
		}
		c.BcryptCost = cost
	}
	if v := os.Getenv(EnvCookieSecure); v != "" {
		secure := v != "false"
		c.CookieSecure = &secure
	}
	if v := os.Getenv(EnvAdminUsername); v != "" {
		c.AdminUsername = v
	}
	if v := os.Getenv(EnvAdminPassword); v != "" {
		c.AdminPassword = v
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 12
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret required (set %s)", EnvJWTSecret)
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt_cost must be between 4 and 14, got %d", c.BcryptCost)
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return fmt.Errorf("admin_username and admin_password must be set together")
	}
	return nil
}
