package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	LogLevel string
	Env      string

	JWTSecret    string
	SnapshotPath string
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine; env vars and defaults still apply.
	_ = godotenv.Load()

	return &Config{
		Port:         GetEnv("PORT", "8082"),
		Env:          GetEnv("ENV", "development"),
		LogLevel:     GetEnv("LOG_LEVEL", "info"),
		JWTSecret:    GetEnv("JWT_SECRET", "aero"),
		SnapshotPath: GetEnv("SNAPSHOT_PATH", "database.json"),
	}, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
