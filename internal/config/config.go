package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port string
	Env  string

	// Google Cloud / Firebase
	ProjectID       string
	CredentialsFile string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// CredentialsFile may stay empty: application default credentials
		// cover the emulator and deployed environments.
		ProjectID:       getEnv("GOOGLE_CLOUD_PROJECT", "finbook-dev"),
		CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
	}

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
