package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config stores the extractor configuration.
type Config struct {
	DBPath         string // Explicit store path, lowest-priority override
	OutputDir      string // Directory extracted files are written to
	CompareCommand string // Follow-up command suggested after an extraction
	// 日志配置
	LogLevel      string
	LogFile       string
	LogMaxSize    int // megabytes
	LogMaxBackups int
	LogMaxAge     int // days
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error loading .env, relying on existing environment variables and defaults: %v", err)
	}

	return &Config{
		DBPath:         getEnv("MIDIMIND_DB_PATH", ""),
		OutputDir:      getEnv("OUTPUT_DIR", "."),
		CompareCommand: getEnv("COMPARE_COMMAND", "node compare-parsers.js"),
		LogLevel:       getEnv("LOG_LEVEL", "warn"),
		LogFile:        getEnv("LOG_FILE", ""), // 默认不写文件
		LogMaxSize:     getEnvInt("LOG_MAX_SIZE", 10),
		LogMaxBackups:  getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:      getEnvInt("LOG_MAX_AGE", 28),
	}
}
