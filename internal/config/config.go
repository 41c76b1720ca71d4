package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port         string
	DatabasePath string

	JWTSecret    string
	CookieSecure bool
	BcryptCost   int

	// Reservation queue. An empty SQSQueueURL selects the in-memory queue.
	SQSQueueURL       string
	AWSRegion         string
	SQSMessageGroupID string
	DispatchTimeout   time.Duration

	DefaultLocale string
	// TicketCatalog is an optional YAML file imported at startup.
	TicketCatalog string
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "ticketboard.db"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		// Default to secure cookies; disable only for local development.
		CookieSecure:      os.Getenv("COOKIE_SECURE") != "false",
		SQSQueueURL:       os.Getenv("SQS_QUEUE_URL"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		SQSMessageGroupID: getEnv("SQS_MESSAGE_GROUP_ID", "reservations"),
		DefaultLocale:     getEnv("DEFAULT_LOCALE", "ko"),
		TicketCatalog:     os.Getenv("TICKET_CATALOG"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	cost, err := getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	if cost < 4 || cost > 14 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cost)
	}
	cfg.BcryptCost = cost

	timeout, err := getEnvAsDuration("DISPATCH_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("DISPATCH_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.DispatchTimeout = timeout

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
