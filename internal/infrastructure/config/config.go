package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	TokenTTL      time.Duration `env:"TOKEN_TTL,       default=24h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL, default=1h"`
	ResetCooldown time.Duration `env:"RESET_COOLDOWN,  default=12m"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=updates"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// insecureSecrets are signing secrets that must never reach a deployed
// environment. The placeholder value shipped in old deployment templates
// is rejected explicitly.
var insecureSecrets = map[string]struct{}{
	"":         {},
	"secret":   {},
	"changeme": {},
	"your-secret-key-change-in-production": {},
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Validate rejects configurations that must not reach production. Outside
// development the JWT secret has to be set and must not be a known
// placeholder.
func (c *Config) Validate() error {
	if c.Env == "development" {
		return nil
	}
	if _, bad := insecureSecrets[c.JWTSecret]; bad {
		return errors.New("config: JWT_SECRET is unset or a known-insecure placeholder")
	}
	return nil
}
