package config

import (
	"fmt"
	"log"
	"os"

	"rollbook/internal/store"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string
	HTTPHost        string
	HTTPPort        string
	StorePath       string
	RateLimitPerMin int
}

// Load returns application config populated from environment variables with sensible defaults.
func Load() App {
	return App{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPHost:        getEnv("HTTP_HOST", "127.0.0.1"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StorePath:       getEnv("STORE_PATH", store.DefaultPath),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
