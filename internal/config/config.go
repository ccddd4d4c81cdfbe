package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration read from the environment.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development"`
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"APP_SHUTDOWN_TIMEOUT" default:"10s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// SequenceBackend selects where document counters live: postgres, redis or memory.
	SequenceBackend    string   `envconfig:"SEQUENCE_BACKEND" default:"postgres"`
	PreviewPlaceholder bool     `envconfig:"NUMBERING_PREVIEW_PLACEHOLDER" default:"false"`
	HomeJurisdictions  []string `envconfig:"HOME_JURISDICTIONS"`

	StatsCacheTTL time.Duration `envconfig:"STATS_CACHE_TTL" default:"10m"`

	MinioEndpoint   string        `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	MinioAccessKey  string        `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey  string        `envconfig:"MINIO_SECRET_KEY"`
	MinioUseSSL     bool          `envconfig:"MINIO_USE_SSL" default:"false"`
	MinioBucket     string        `envconfig:"MINIO_BUCKET" default:"ecs-documents"`
	PresignedURLTTL time.Duration `envconfig:"PRESIGNED_URL_TTL" default:"15m"`

	AuthJWKSURL   string `envconfig:"AUTH_JWKS_URL"`
	AuthJWTSecret string `envconfig:"AUTH_JWT_SECRET"`

	RateLimitPerMinute int      `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
	AllowedHosts       []string `envconfig:"ALLOWED_HOSTS"`

	FirmConfigPath string `envconfig:"FIRM_CONFIG_PATH" default:"firm.toml"`
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.SequenceBackend {
	case "postgres", "redis", "memory":
	default:
		return errors.New("SEQUENCE_BACKEND must be one of postgres, redis, memory")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if c.AuthJWKSURL == "" && c.AuthJWTSecret == "" {
		return errors.New("either AUTH_JWKS_URL or AUTH_JWT_SECRET must be set")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && strings.EqualFold(c.AppEnv, "production")
}
