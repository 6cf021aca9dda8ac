package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL string
	DBMaxConns  int
	DBMinConns  int

	// Redis
	RedisURL string

	// JWT
	JWTSecret string

	// Gemini AI
	GeminiAPIKey    string
	GeminiModel     string
	GeminiMaxTokens int

	// Google OAuth
	GoogleClientID string

	// SMTP
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Env:             getEnvOrDefault("ENV", "development"),
		DatabaseURL:     mustGetEnv("DATABASE_URL"),
		DBMaxConns:      getEnvAsIntOrDefault("DB_MAX_CONNS", 25),
		DBMinConns:      getEnvAsIntOrDefault("DB_MIN_CONNS", 5),
		RedisURL:        mustGetEnv("REDIS_URL"),
		JWTSecret:       mustGetEnv("JWT_SECRET"),
		GeminiAPIKey:    mustGetEnv("GEMINI_API_KEY"),
		GeminiModel:     getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiMaxTokens: getEnvAsIntOrDefault("GEMINI_MAX_TOKENS", 512),
		GoogleClientID:  getEnvOrDefault("GOOGLE_CLIENT_ID", ""),
		SMTPHost:        getEnvOrDefault("SMTP_HOST", ""),
		SMTPPort:        getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser:        getEnvOrDefault("SMTP_USER", ""),
		SMTPPass:        getEnvOrDefault("SMTP_PASS", ""),
		SMTPFrom:        getEnvOrDefault("SMTP_FROM", "noreply@notemind.app"),
		FrontendURL:     getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
