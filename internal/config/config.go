package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port            string
	Origin          string
	Environment     string
	JWTSecret       string
	Database        DatabaseConfig
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "todos"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	accessTTLSeconds, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRY_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRY_SECONDS: %w", err)
	}

	// Deliberately short default so rotation is easy to exercise end to end.
	// Raise REFRESH_TOKEN_EXPIRY_MINUTES in real deployments.
	refreshTTLMinutes, err := strconv.Atoi(getEnv("REFRESH_TOKEN_EXPIRY_MINUTES", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_EXPIRY_MINUTES: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:            getEnv("PORT", "5000"),
		Origin:          getEnv("ORIGIN", "http://localhost:3000"),
		Environment:     getEnv("NODE_ENV", "development"),
		JWTSecret:       getEnv("JWT_SECRET", "default_jwt_secret"),
		Database:        dbConfig,
		AccessTokenTTL:  time.Duration(accessTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTTLMinutes) * time.Minute,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
