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

	// Quiz backend
	BackendURL string

	// Identity (optional; empty disables gateway-side verification)
	JWTSecret string

	// Frontend
	FrontendURL string

	// Upload rate limit (requests per minute per IP)
	UploadRateLimit int

	// Telegram front-end
	TelegramBotToken string
	GatewayURL       string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		Env:              getEnvOrDefault("ENV", "development"),
		BackendURL:       getEnvOrDefault("BACKEND_URL", "http://localhost:8001"),
		JWTSecret:        getEnvOrDefault("GATEWAY_JWT_SECRET", ""),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		UploadRateLimit:  getEnvAsIntOrDefault("UPLOAD_RATE_LIMIT", 5),
		TelegramBotToken: getEnvOrDefault("TELEGRAM_BOT_TOKEN", ""),
		GatewayURL:       getEnvOrDefault("GATEWAY_URL", "http://localhost:8080"),
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
