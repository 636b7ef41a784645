package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application-level configuration
type Config struct {
	// Input
	CSVFilePath string

	// Dashboard
	ListenAddr       string
	TopSkillsLimit   int
	ReloadCooldownMs int // minimum gap between explicit dataset reloads

	// Snapshot
	SnapshotURL     string
	SnapshotPath    string
	SnapshotRetries int

	// Observability
	LogLevel         string
	ServiceName      string
	OTELCollectorURL string // empty disables trace export
}

// Load reads configuration from an optional .env file and environment
// variables, falling back to defaults
func Load() *Config {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	return &Config{
		CSVFilePath:      getEnv("CSV_FILE_PATH", "upwork-extract.csv"),
		ListenAddr:       getEnv("LISTEN_ADDR", ":8080"),
		TopSkillsLimit:   getEnvInt("TOP_SKILLS_LIMIT", 15),
		ReloadCooldownMs: getEnvInt("RELOAD_COOLDOWN_MS", 5000),
		SnapshotURL:      getEnv("SNAPSHOT_URL", "http://localhost:8080/"),
		SnapshotPath:     getEnv("SNAPSHOT_PATH", "output/dashboard.png"),
		SnapshotRetries:  getEnvInt("SNAPSHOT_RETRIES", 5),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ServiceName:      getEnv("SERVICE_NAME", "upwork-analytics"),
		OTELCollectorURL: getEnv("OTEL_COLLECTOR_URL", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
