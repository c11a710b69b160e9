package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Addr          string
	DatabaseURL   string
	DatabaseName  string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigins   []string
	LLMAPIKey     string
	LLMModel      string
	LLMTimeout    time.Duration
	MigrationsDir string
	Environment   string
}

func Load() Config {
	return Config{
		Addr:          getEnv("APP_ADDR", ":8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DatabaseName:  getEnv("DB_NAME", "hrms"),
		JWTSecret:     getEnv("JWT_SECRET", "change-me-in-production"),
		TokenTTL:      getEnvDuration("TOKEN_TTL", 24*time.Hour),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		LLMAPIKey:     getEnv("LLM_API_KEY", ""),
		LLMModel:      getEnv("LLM_MODEL", "claude-3-7-sonnet-20250219"),
		LLMTimeout:    getEnvDuration("LLM_TIMEOUT", 30*time.Second),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),
		Environment:   getEnv("APP_ENV", "development"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if c.JWTSecret == "" || c.JWTSecret == "change-me-in-production" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.LLMAPIKey) == "" {
			return fmt.Errorf("LLM_API_KEY must be set in production")
		}
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.LLMTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	return nil
}
