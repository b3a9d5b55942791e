// Package config holds the server configuration, parsed from the
// environment. CLI flags may override individual fields after parsing.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration.
type Config struct {
	Host string `env:"CHESSLINK_HOST" envDefault:"localhost"`
	Port int    `env:"CHESSLINK_PORT" envDefault:"8080"`

	// Room code generation
	CodeLength int `env:"CHESSLINK_CODE_LENGTH" envDefault:"5"`

	// Idle-room hardening: rooms with no activity for longer than
	// IdleTimeout are destroyed by a background sweep every
	// CleanupInterval. Zero disables the sweep.
	IdleTimeout     time.Duration `env:"CHESSLINK_ROOM_IDLE_TIMEOUT" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CHESSLINK_ROOM_CLEANUP_INTERVAL" envDefault:"1h"`

	Debug bool `env:"CHESSLINK_DEBUG"`

	// Optional ngrok tunnel for external access during development.
	NgrokEnabled bool   `env:"NGROK_ENABLED"`
	NgrokAuth    string `env:"NGROK_AUTHTOKEN"`
	NgrokDomain  string `env:"NGROK_DOMAIN"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
