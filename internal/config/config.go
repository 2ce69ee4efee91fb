// Package config collects process configuration from the environment into
// an explicit struct that gets threaded into each component.
package config

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppDomain string
	Port      string

	// SessionSecret is the decoded AES key for session tokens. Loading
	// fails without it: the service must never run unauthenticated.
	SessionSecret []byte

	DBURL        string
	GormLogLevel string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitURL  string
	EventQueue string
}

// Load reads .env (when present) and the process environment. Missing or
// malformed required values return an error so callers fail closed.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Warn(".env file not found, relying on env vars", "err", err)
	}

	secret, err := decodeSecret(os.Getenv("SESSION_SECRET"))
	if err != nil {
		return nil, err
	}

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is required")
	}
	rabbitURL := os.Getenv("RABBITMQ_URL")
	if rabbitURL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL is required")
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	return &Config{
		AppDomain:     os.Getenv("APP_DOMAIN"),
		Port:          getenvDefault("API_SERVICE_PORT", ":8080"),
		SessionSecret: secret,
		DBURL:         dbURL,
		GormLogLevel:  os.Getenv("GORM_LOG_LEVEL"),
		RedisAddr:     redisAddr,
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		RabbitURL:     rabbitURL,
		EventQueue:    getenvDefault("EVENT_QUEUE_NAME", "link_events"),
	}, nil
}

func decodeSecret(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("SESSION_SECRET is not valid base64: %w", err)
	}
	switch len(key) {
	case 16, 24, 32:
		return key, nil
	}
	return nil, fmt.Errorf("SESSION_SECRET must decode to 16, 24 or 32 bytes, got %d", len(key))
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
