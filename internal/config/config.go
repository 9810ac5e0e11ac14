// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	Environment   string        `mapstructure:"ENVIRONMENT"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// JWT Configuration
	JWTSecretKey   string        `mapstructure:"JWT_SECRET_KEY"`
	JWTTokenExpiry time.Duration `mapstructure:"JWT_TOKEN_EXPIRY_HOURS"`

	// Google OAuth Configuration
	GoogleClientID      string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret  string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI   string `mapstructure:"GOOGLE_REDIRECT_URI"`
	FrontendCallbackURL string `mapstructure:"FRONTEND_CALLBACK_URL"`

	// Firebase Configuration (optional; firebase-login falls back to a
	// development-only trust mode when unset)
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseProjectID             string `mapstructure:"FIREBASE_PROJECT_ID"`

	// Redis Configuration (optional; listing cache is disabled when ADDR is empty)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	ListingCacheTTL time.Duration `mapstructure:"LISTING_CACHE_TTL_SECONDS"`

	// Elasticsearch Configuration (optional; search mirror disabled when empty)
	ElasticsearchURL string `mapstructure:"ELASTICSEARCH_URL"`

	// Cron Jobs
	StaleVerificationJobSchedule string `mapstructure:"STALE_VERIFICATION_JOB_SCHEDULE"`
	StaleVerificationAgeDays     int    `mapstructure:"STALE_VERIFICATION_AGE_DAYS"`
}

// IsProduction reports whether the app runs with production trust rules.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DSN builds the GORM postgres DSN from the individual DB parameters.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode, c.DBTimezone)
}

// Load attempts to load configuration from a .env file (if present) and
// environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "3001")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "bhoomi_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("JWT_TOKEN_EXPIRY_HOURS", 24)

	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URI", "http://localhost:3001/api/auth/google/callback")
	v.SetDefault("FRONTEND_CALLBACK_URL", "http://localhost:3000/auth/callback")

	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")
	v.SetDefault("FIREBASE_PROJECT_ID", "")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LISTING_CACHE_TTL_SECONDS", 60)

	v.SetDefault("ELASTICSEARCH_URL", "")

	v.SetDefault("STALE_VERIFICATION_JOB_SCHEDULE", "@daily")
	v.SetDefault("STALE_VERIFICATION_AGE_DAYS", 7)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.JWTTokenExpiry = time.Duration(v.GetInt("JWT_TOKEN_EXPIRY_HOURS")) * time.Hour
	cfg.ListingCacheTTL = time.Duration(v.GetInt("LISTING_CACHE_TTL_SECONDS")) * time.Second

	if cfg.JWTSecretKey == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("FATAL: JWT_SECRET_KEY must be set in production")
		}
		cfg.JWTSecretKey = "dev-only-insecure-secret"
	}

	if cfg.FirebaseServiceAccountKeyPath != "" {
		if _, err := os.Stat(cfg.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("FATAL: Firebase service account key file specified in FIREBASE_SERVICE_ACCOUNT_KEY_PATH (%s) not found", cfg.FirebaseServiceAccountKeyPath)
		}
	}

	return &cfg, nil
}
