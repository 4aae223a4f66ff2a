package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const defaultAbacatePayBaseURL = "https://api.abacatepay.com/v1"

type Config struct {
	Port       string
	DBURL      string
	JWTSecret  string
	CORSOrigin string
	AppURL     string
	RedisURL   string

	// Gateway credentials are not required at start. Handlers that need them
	// reject the request while they are missing.
	AbacatePayAPIKey        string
	AbacatePayWebhookSecret string
	AbacatePayBaseURL       string

	GoogleClientID         string
	GoogleClientSecret     string
	GoogleRedirectURL      string
	GoogleFrontendRedirect string
}

func Load(logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		DBURL:      getEnv("DB_URL", ""),
		JWTSecret:  getEnv("JWT_SECRET", ""),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),
		AppURL:     getEnv("APP_URL", "http://localhost:5173"),
		RedisURL:   getEnv("REDIS_URL", ""),

		AbacatePayAPIKey:        getEnv("ABACATEPAY_API_KEY", ""),
		AbacatePayWebhookSecret: getEnv("ABACATEPAY_WEBHOOK_SECRET", ""),
		AbacatePayBaseURL:       strings.TrimRight(getEnv("ABACATEPAY_BASE_URL", defaultAbacatePayBaseURL), "/"),

		GoogleClientID:         getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:     getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:      getEnv("GOOGLE_REDIRECT_URL", ""),
		GoogleFrontendRedirect: getEnv("GOOGLE_FRONTEND_REDIRECT", ""),
	}

	var missing []string
	if cfg.DBURL == "" {
		missing = append(missing, "DB_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if cfg.AbacatePayAPIKey == "" {
		logger.Warn("ABACATEPAY_API_KEY not set, checkout and status checks will be rejected")
	}
	if cfg.AbacatePayWebhookSecret == "" {
		logger.Warn("ABACATEPAY_WEBHOOK_SECRET not set, webhook deliveries will be rejected")
	}

	return cfg, nil
}

// GoogleEnabled reports whether Google sign-in routes should be mounted.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURL != ""
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
