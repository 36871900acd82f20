package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// devJWTSecret signs tokens in development when JWT_SECRET is unset.
const devJWTSecret = "dev-only-insecure-secret"

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	UploadDir string        `env:"UPLOAD_DIR, default=uploads"`
	SeedData  bool          `env:"SEED_DATA,  default=true"`

	Database DatabaseConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	Audit    AuditConfig
	Reminder ReminderConfig
}

type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER,         default=sqlite"`
	DSN          string `env:"DB_DSN,            default=facility.db"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS, default=10"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=smart_facility"`
}

// AuditConfig controls the asynchronous activity log.
type AuditConfig struct {
	Enabled bool `env:"AUDIT_ENABLED, default=true"`
	Workers int  `env:"AUDIT_WORKERS, default=4"`
}

type ReminderConfig struct {
	Cron string `env:"REMINDER_CRON, default=0 7 * * *"`
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate fills development-only defaults and rejects unusable settings.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET is required outside development")
		}
		c.JWTSecret = devJWTSecret
	}
	switch c.Database.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or mysql, got %q", c.Database.Driver)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
