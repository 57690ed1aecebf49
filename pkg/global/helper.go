package global

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDefaultTimer() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func GetAPIBase() string {
	return GetEnvOrDefault("API_BASE", "https://krono-coffee.onrender.com")
}

// GetTokenPath returns the file used as the persistent credential slot.
func GetTokenPath() string {
	if path := os.Getenv("TOKEN_PATH"); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Printf("Warning: could not resolve user config dir, storing token in working directory: %v", err)
		return ".krono_token"
	}
	return filepath.Join(configDir, "krono-coffee", "access_token")
}

func GetRedisAddress() string {
	return GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379")
}

func GetRedisPassword() string {
	return GetEnvOrDefault("REDIS_PASSWORD", "")
}
