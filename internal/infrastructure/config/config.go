// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (group membership reference data)
	PostgresURI string

	// Telegram
	TelegramToken  string
	TelegramAPIURL string

	// Render client
	ChromeExecutable string

	// Monitoring cycle
	CheckInterval      time.Duration
	NavigationTimeout  time.Duration
	ContentWaitTimeout time.Duration
	RecoverySettle     time.Duration
	RouteSettle        time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "farewatch"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		TelegramToken:  getEnv("TELEGRAM_TOKEN", ""),
		TelegramAPIURL: getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),

		ChromeExecutable: getEnv("CHROME_EXECUTABLE", ""),

		CheckInterval:      time.Duration(getEnvAsInt("CHECK_INTERVAL", 3600)) * time.Second,
		NavigationTimeout:  time.Duration(getEnvAsInt("NAV_TIMEOUT", 60)) * time.Second,
		ContentWaitTimeout: time.Duration(getEnvAsInt("CONTENT_WAIT_TIMEOUT", 15)) * time.Second,
		RecoverySettle:     time.Duration(getEnvAsInt("RECOVERY_SETTLE", 5)) * time.Second,
		RouteSettle:        time.Duration(getEnvAsInt("ROUTE_SETTLE", 3)) * time.Second,
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
