// Package config loads configuration for both binaries from the environment,
// with an optional .env file for development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	env "github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Server holds the collaborator service configuration.
type Server struct {
	RunAddr       string        `env:"SERVER_ADDRESS" envDefault:":8080"`
	DBPath        string        `env:"DB_PATH" envDefault:"./data/billsplit.db"`
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	AdminPassword string        `env:"ADMIN_PASSWORD" envDefault:"admin123"`
}

// Client holds the CLI client configuration.
type Client struct {
	ServerURL   string        `env:"BILLSPLIT_SERVER" envDefault:"http://localhost:8080"`
	SessionFile string        `env:"BILLSPLIT_SESSION_FILE"`
	Timeout     time.Duration `env:"BILLSPLIT_TIMEOUT" envDefault:"10s"`
}

// LoadServer reads the server configuration from the environment.
func LoadServer() (*Server, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Server{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	return cfg, nil
}

// LoadClient reads the client configuration from the environment. The session
// slot defaults to a file under the user's config directory.
func LoadClient() (*Client, error) {
	_ = godotenv.Load()

	cfg := &Client{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse client config: %w", err)
	}

	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config directory: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, "billsplit", "session.json")
	}
	return cfg, nil
}
