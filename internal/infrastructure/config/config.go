package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the whole configuration surface, read once at startup.
// The core never watches for changes.
type Config struct {
	Port string `env:"PORT,     default=8080"`
	Env  string `env:"ENV,      default=development"`
	// SecretKey signs bearer tokens. Must be set outside development.
	SecretKey                string `env:"SECRET_KEY"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=30"`
	LogLevel                 string `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
	Redis    RedisConfig
}

type DatabaseConfig struct {
	URL  string `env:"DATABASE_URL,  default=mongodb://localhost:27017"`
	Name string `env:"DATABASE_NAME, default=auth_backend"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
