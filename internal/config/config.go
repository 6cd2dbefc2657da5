package config

import (
	"fmt"  // Error wrapping
	"time" // Durations for token lifetimes and cache TTL

	"github.com/caarlos0/env/v6" // Typed environment parsing
	"github.com/joho/godotenv"   // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string        `env:"APP_PORT" envDefault:"8000"`                      // Application port
	IsProd         bool          `env:"IS_PROD" envDefault:"false"`                      // Is production environment
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`                     // Logrus level
	TrustedProxies []string      `env:"TRUSTED_PROXIES" envSeparator:"," envDefault:"127.0.0.1"`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080,http://127.0.0.1:8080"`
	DBDriver       string        `env:"DB_DRIVER" envDefault:"mysql"`    // mysql or postgres
	DBUser         string        `env:"DB_USER" envDefault:"root"`       // Database user
	DBPassword     string        `env:"DB_PASSWORD"`                     // Database password
	DBHost         string        `env:"DB_HOST" envDefault:"localhost"`  // Database host
	DBPort         string        `env:"DB_PORT" envDefault:"3306"`       // Database port
	DBName         string        `env:"DB_NAME" envDefault:"realty"`     // Database name
	JWTSecret      string        `env:"JWT_SECRET"`                      // JWT secret key
	AccessTTL      time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`   // Access token lifetime
	RefreshTTL     time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"` // Refresh token lifetime
	RedisAddr      string        `env:"REDIS_ADDR"`                      // Redis server address, empty means in-process cache
	RedisPass      string        `env:"REDIS_PASS"`                      // Redis password
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`         // Redis database number
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"60s"`      // List response cache TTL
	MaxUploadMB    int64         `env:"MAX_UPLOAD_MB" envDefault:"32"`   // Request body cap

	// Content writes (listings, gallery) are open unless this is set
	ProtectContentWrites bool `env:"PROTECT_CONTENT_WRITES" envDefault:"false"`

	Media MediaConfig `envPrefix:"MEDIA_"`
	S3    S3Config    `envPrefix:"S3_"`
	Meili MeiliConfig `envPrefix:"MEILI_"`
	Mail  MailConfig  `envPrefix:"MAIL_"`

	// Bootstrap admin created by cmd/migrate when both are set
	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD"`
}

// MediaConfig selects where uploaded images are stored
type MediaConfig struct {
	Backend string `env:"BACKEND" envDefault:"local"` // local or s3
	Root    string `env:"ROOT" envDefault:"media"`    // Local media root
	BaseURL string `env:"BASE_URL"`                   // Public base URL; empty builds it from the request host
}

// S3Config holds MinIO/S3 connection settings
type S3Config struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"media"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// MeiliConfig holds Meilisearch settings; search falls back to SQL when Host is empty
type MeiliConfig struct {
	Host   string `env:"HOST"`
	APIKey string `env:"API_KEY"`
	Index  string `env:"INDEX" envDefault:"listings"`
}

// MailConfig holds SMTP settings for contact notifications
type MailConfig struct {
	Host      string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port      int    `env:"PORT" envDefault:"587"`
	User      string `env:"USER"`
	Password  string `env:"PASSWORD"`
	From      string `env:"FROM"`
	Operator  string `env:"OPERATOR"`                        // Address receiving new-message notifications
	Signature string `env:"SIGNATURE" envDefault:"The Team"` // Sign-off of the acknowledgement mail
}

// LoadConfig loads configuration from .env and environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.User // Default sender is the SMTP account
	}
	return cfg, nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// MailEnabled reports whether SMTP credentials are configured
func (c *Config) MailEnabled() bool {
	return c.Mail.Host != "" && c.Mail.User != "" && c.Mail.Operator != ""
}
