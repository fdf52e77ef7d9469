package config

import (
	"os"
	"strconv"
)

// Config carries the environment-driven settings for the service.
type Config struct {
	Port         string
	SupabaseURL  string
	SupabaseKey  string
	VideoBucket  string
	UserID       string
	WorkerCount  int
	JobQueueSize int
}

// Load reads the configuration from the environment, falling back to
// development defaults where a value is safe to default.
func Load() Config {
	return Config{
		Port:         getEnv("PORT", "8080"),
		SupabaseURL:  getEnv("SUPABASE_URL", ""),
		SupabaseKey:  getEnv("SUPABASE_SERVICE_KEY", ""),
		VideoBucket:  getEnv("VIDEO_BUCKET", "videos"),
		UserID:       getEnv("API_USER_ID", "test_user"),
		WorkerCount:  getEnvInt("WORKER_COUNT", 4),
		JobQueueSize: getEnvInt("JOB_QUEUE_SIZE", 64),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
