package config

import (
	"os"
	"strconv"
	"time"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	LogLevel     string

	// planner service
	DatabaseDSN      string
	ProcessingDelay  time.Duration
	ProgressInterval time.Duration
	CanvasWidth      int
	CanvasHeight     int

	// gateway
	PlannerURL string
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "3000"),
		Environment:      getEnv("ENV", "development"),
		ReadTimeout:      getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:     getEnvAsInt("WRITE_TIMEOUT", 10),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DatabaseDSN:      getEnv("PLANNER_DB_DSN", ""),
		ProcessingDelay:  getEnvAsMillis("PROCESSING_DELAY_MS", 3000),
		ProgressInterval: getEnvAsMillis("PROGRESS_INTERVAL_MS", 400),
		CanvasWidth:      getEnvAsInt("CANVAS_WIDTH", 800),
		CanvasHeight:     getEnvAsInt("CANVAS_HEIGHT", 600),
		PlannerURL:       getEnv("PLANNER_URL", "http://localhost:3001"),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsMillis(key string, defaultVal int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultVal)) * time.Millisecond
}
