package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	Version     string
	DBUser      string
	DBPassword  string
	DBHost      string
	DBPort      string
	DBName      string
	APIKey      string // API key for authentication

	// Game tuning knobs. Defaults match the shipped balance; overridable
	// for load tests and staging.
	ChallengeTimeout time.Duration
	PromptTimeout    time.Duration
	ConfirmTimeout   time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		Version:     getEnv("VERSION", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "tacticbot"),
		APIKey:      getEnv("API_KEY", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	cfg.ChallengeTimeout, err = getEnvDuration("CHALLENGE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.PromptTimeout, err = getEnvDuration("PROMPT_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.ConfirmTimeout, err = getEnvDuration("CONFIRM_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns a default
func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
