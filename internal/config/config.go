// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	RedisAddr     string
	RedisPassword string
	DatabaseURL   string

	// SessionTTL is how long a conversation stays warm before the next
	// inbound message starts over at the menu.
	SessionTTL time.Duration

	WorkerCount      int
	QueueBuffer      int
	ReceiveWaitSecs  int
	ReceiveBatchSize int

	// MessageProvider selects the outbound sender: "http" or "console".
	MessageProvider     string
	ProviderAPIURL      string
	ProviderAPIKey      string
	ProviderSendTimeout time.Duration

	// WebhookSecret, when set, is required as a bearer token on the
	// inbound webhook.
	WebhookSecret string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		SessionTTL: getEnvAsDuration("SESSION_TTL", 30*time.Minute),

		WorkerCount:      getEnvAsInt("WORKER_COUNT", 4),
		QueueBuffer:      getEnvAsInt("QUEUE_BUFFER", 256),
		ReceiveWaitSecs:  getEnvAsInt("RECEIVE_WAIT_SECONDS", 2),
		ReceiveBatchSize: getEnvAsInt("RECEIVE_BATCH_SIZE", 5),

		MessageProvider:     strings.ToLower(strings.TrimSpace(getEnv("MESSAGE_PROVIDER", "console"))),
		ProviderAPIURL:      getEnv("PROVIDER_API_URL", ""),
		ProviderAPIKey:      getEnv("PROVIDER_API_KEY", ""),
		ProviderSendTimeout: getEnvAsDuration("PROVIDER_SEND_TIMEOUT", 10*time.Second),

		WebhookSecret: getEnv("WEBHOOK_SECRET", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
