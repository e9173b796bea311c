package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, read once at startup.
type Config struct {
	ServerAddr string

	// DBDriver selects the gorm dialector: "sqlite" (default) or "postgres".
	DBDriver   string
	SQLitePath string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	UploadDir      string
	AllowedOrigins []string
}

// Load reads .env (if present) and the environment, applying defaults
// suitable for running the dashboard locally against sqlite.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServerAddr:     getenv("SERVER_ADDR", ":8080"),
		DBDriver:       getenv("DB_DRIVER", "sqlite"),
		SQLitePath:     getenv("SQLITE_PATH", "lifestyle.db"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         getenv("DB_PORT", "5432"),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		AllowedOrigins: strings.Split(getenv("CORS_ORIGINS", "http://localhost:3000"), ","),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
