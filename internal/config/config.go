package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseURL    string
	MigrationsPath string

	JWTSecret    string
	JWTAlgorithm string
	TokenTTL     time.Duration

	AllowedOrigin  string
	Port           string
	PrometheusPort string
	LogLevel       string
	LogFormat      string

	EnforceRoles   bool
	LoginRateLimit float64
	LoginRateBurst int

	TelegramToken  string
	TelegramChatID int64
}

var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("TOKEN_TTL", "30m")
	v.SetDefault("ALLOWED_ORIGIN", "http://localhost:3000")
	v.SetDefault("PORT", "8001")
	v.SetDefault("PROMETHEUS_PORT", "9090")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("ENFORCE_ROLES", false)
	v.SetDefault("LOGIN_RATE_LIMIT", 5.0)
	v.SetDefault("LOGIN_RATE_BURST", 10)

	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:    v.GetString("DATABASE_URL"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTAlgorithm:   strings.ToUpper(v.GetString("JWT_ALGORITHM")),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		AllowedOrigin:  v.GetString("ALLOWED_ORIGIN"),
		Port:           v.GetString("PORT"),
		PrometheusPort: v.GetString("PROMETHEUS_PORT"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		EnforceRoles:   v.GetBool("ENFORCE_ROLES"),
		LoginRateLimit: v.GetFloat64("LOGIN_RATE_LIMIT"),
		LoginRateBurst: v.GetInt("LOGIN_RATE_BURST"),
		TelegramToken:  v.GetString("TELEGRAM_TOKEN"),
		TelegramChatID: v.GetInt64("TELEGRAM_CHAT_ID"),
	}

	// Required environment variables
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if !supportedAlgorithms[cfg.JWTAlgorithm] {
		return nil, fmt.Errorf("unsupported JWT_ALGORITHM %q", cfg.JWTAlgorithm)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}
