package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string `env:"PORT,             default=8080"`
	Env             string `env:"ENV,              default=development"`
	LogLevel        string `env:"LOG_LEVEL,        default=info"`
	PrivilegedEmail string `env:"PRIVILEGED_EMAIL"`

	Auth     AuthConfig
	MFA      MFAConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Realtime RealtimeConfig
}

type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET, required"`
	SessionTTL   time.Duration `env:"SESSION_TTL,     default=24h"`
	ChallengeTTL time.Duration `env:"CHALLENGE_TTL,   default=5m"`
	RateLimit    float64       `env:"AUTH_RATE_LIMIT, default=5"`
	RateBurst    int           `env:"AUTH_RATE_BURST, default=10"`
}

type MFAConfig struct {
	Issuer        string        `env:"MFA_ISSUER,         default=GatePay"`
	MaxAttempts   int           `env:"MFA_MAX_ATTEMPTS,   default=5"`
	LockoutWindow time.Duration `env:"MFA_LOCKOUT_WINDOW, default=15m"`
	BackupCodes   int           `env:"MFA_BACKUP_CODES,   default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=merchant_onboarding"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type RealtimeConfig struct {
	Channel string `env:"REALTIME_CHANNEL, default=onboarding:changes"`
	Workers int    `env:"REALTIME_WORKERS, default=4"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be blank"))
	}
	if c.MFA.MaxAttempts < 1 {
		errs = append(errs, errors.New("MFA_MAX_ATTEMPTS must be positive"))
	}
	if c.MFA.BackupCodes < 1 {
		errs = append(errs, errors.New("MFA_BACKUP_CODES must be positive"))
	}
	if c.Auth.ChallengeTTL >= c.Auth.SessionTTL {
		errs = append(errs, errors.New("CHALLENGE_TTL must be shorter than SESSION_TTL"))
	}
	return errors.Join(errs...)
}
