package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Runtime configuration
	Environment string
	LogLevel    slog.Level

	// Backend endpoints
	TasksAPIURL    string
	ExpensesAPIURL string
	BookingAPIURL  string
	APIToken       string

	// Transport
	EnableCircuitBreaker bool

	// Snapshot cache (empty RedisURL disables it)
	RedisURL    string
	RedisDB     int
	SnapshotTTL time.Duration

	// Monitoring
	EnableMetrics bool
	MetricsPort   string

	// Local mock backend
	MockServerAddr string
}

// LoadConfig reads the environment, after merging an optional .env file from
// the working directory. Variables already set win over the file.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("config: could not read .env file", "error", err)
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnvAsLevel("LOG_LEVEL", slog.LevelWarn),

		TasksAPIURL:    getEnv("TASKS_API_URL", "http://localhost:8000"),
		ExpensesAPIURL: getEnv("EXPENSES_API_URL", "http://localhost:8000/api"),
		BookingAPIURL:  getEnv("BOOKING_API_URL", "http://localhost:8000"),
		APIToken:       getEnv("API_TOKEN", ""),

		EnableCircuitBreaker: getEnvAsBool("ENABLE_CIRCUIT_BREAKER", false),

		RedisURL:    getEnv("REDIS_URL", ""),
		RedisDB:     getEnvAsInt("REDIS_DB", 0),
		SnapshotTTL: getEnvAsDuration("SNAPSHOT_TTL", "24h"),

		EnableMetrics: getEnvAsBool("ENABLE_METRICS", false),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),

		MockServerAddr: getEnv("MOCK_SERVER_ADDR", "localhost:8000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return defaultValue
	}
	if n, err := strconv.Atoi(valueStr); err == nil {
		return slog.Level(n)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(valueStr)); err != nil {
		return defaultValue
	}
	return level
}
