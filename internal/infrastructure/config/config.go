package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port         string `env:"PORT,          default=6001"`
	Env          string `env:"ENV,           default=development"`
	LogLevel     string `env:"LOG_LEVEL,     default=info"`
	ClientOrigin string `env:"CLIENT_ORIGIN, default=*"`

	Auth      AuthConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Events    EventsConfig
	Companies CompaniesConfig
}

type AuthConfig struct {
	JWTSecret          string        `env:"JWT_SECRET, required"`
	TokenTTL           time.Duration `env:"TOKEN_TTL, default=24h"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE, default=20"`
}

type MongoConfig struct {
	URI          string `env:"MONGODB_URI, required"`
	Database     string `env:"MONGO_DB, default=sb_works"`
	Transactions bool   `env:"MONGO_TRANSACTIONS, default=true"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type EventsConfig struct {
	AMQPURL string `env:"AMQP_URL"`
	Workers int    `env:"EVENT_WORKERS, default=4"`
}

// CompaniesConfig points at the Postgres company directory. Empty disables it.
type CompaniesConfig struct {
	DatabaseURL string `env:"COMPANIES_DATABASE_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l. Tests pass an envconfig.MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Events.Workers < 1 {
		cfg.Events.Workers = 1
	}
	if cfg.Auth.RateLimitPerMinute < 1 {
		return nil, fmt.Errorf("config: RATE_LIMIT_PER_MINUTE must be positive")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// AllowedOrigins splits CLIENT_ORIGIN on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.ClientOrigin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
