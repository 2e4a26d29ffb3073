// Package config loads runtime settings from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting. Defaults make a fresh checkout of the
// repo usable without any environment.
type Config struct {
	DBPath      string `envconfig:"DB_PATH" default:"zyrix.db"`
	SessionFile string `envconfig:"SESSION_FILE" default:".zyrix-session"`

	SessionSecret string        `envconfig:"SESSION_SECRET" default:"zyrix-local-dev-secret"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	// Reserved administrator identity created on first load.
	AdminEmail     string `envconfig:"ADMIN_EMAIL" default:"sebastian"`
	AdminPassword  string `envconfig:"ADMIN_PASSWORD" default:"colestre11"`
	AdminFirstName string `envconfig:"ADMIN_FIRST_NAME" default:"Sebastian"`
	AdminLastName  string `envconfig:"ADMIN_LAST_NAME" default:"Admin"`
	AdminPhone     string `envconfig:"ADMIN_PHONE" default:"000-000"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the ZYRIX_* environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("zyrix", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
