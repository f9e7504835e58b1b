// Package auth provides account signup and signin, session tokens,
// registration keys and the HTTP guards that enforce roles.
package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is how long a session token stays valid unless HB_TOKEN_TTL is set.
const DefaultTokenTTL = 30 * 24 * time.Hour

// Config holds authentication configuration.
type Config struct {
	TokenSecret      string
	TokenTTL         time.Duration
	ProductKeySecret string
	BcryptCost       int
}

// ConfigFromEnv creates a Config from environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		TokenSecret:      os.Getenv("HB_TOKEN_SECRET"),
		TokenTTL:         DefaultTokenTTL,
		ProductKeySecret: os.Getenv("HB_PRODUCT_KEY_SECRET"),
		BcryptCost:       bcrypt.DefaultCost,
	}

	if v := os.Getenv("HB_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing HB_TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}

	if v := os.Getenv("HB_BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parsing HB_BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}

	return cfg, cfg.Validate()
}

// Validate reports missing or out-of-range settings.
func (c Config) Validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("HB_TOKEN_SECRET is required")
	}
	if c.ProductKeySecret == "" {
		return fmt.Errorf("HB_PRODUCT_KEY_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive, got %s", c.TokenTTL)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be %d-%d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	return nil
}
