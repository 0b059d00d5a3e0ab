package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey           string
	GeminiMaxAttempts      int
	GeminiBaseDelaySeconds int

	// Uploads
	MaxUploadMB int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                   getEnvOrDefault("PORT", "8080"),
		Env:                    getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		GeminiMaxAttempts:      getEnvAsIntOrDefault("GEMINI_MAX_ATTEMPTS", 3),
		GeminiBaseDelaySeconds: getEnvAsIntOrDefault("GEMINI_BASE_DELAY_SECONDS", 2),
		MaxUploadMB:            getEnvAsIntOrDefault("MAX_UPLOAD_MB", 20),
		FrontendURL:            getEnvOrDefault("FRONTEND_URL", "*"),
	}

	// The key is optional at startup; chat requests fail with 500 until it is set.
	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not set. Please set it in .env file.")
	}

	return cfg
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
