package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	ImportWorkerCount int
	ImportQueueSize   int

	// Learning engine tuning. These mirror learning.Settings; the engine's
	// magic numbers are configuration, not literals.
	MaxPoints        int
	PointsPerCorrect int
	QuizInterval     int
	QuizSize         int
	MinViewedForQuiz int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:geirfa.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 32),
		MaxPoints:         envIntOr("MAX_POINTS", 50),
		PointsPerCorrect:  envIntOr("POINTS_PER_CORRECT", 10),
		QuizInterval:      envIntOr("QUIZ_INTERVAL", 5),
		QuizSize:          envIntOr("QUIZ_SIZE", 2),
		MinViewedForQuiz:  envIntOr("MIN_VIEWED_FOR_QUIZ", 2),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a known level", c.LogLevel))
	}
	if c.ImportWorkerCount <= 0 {
		problems = append(problems, "IMPORT_WORKER_COUNT must be positive")
	}
	if c.ImportQueueSize <= 0 {
		problems = append(problems, "IMPORT_QUEUE_SIZE must be positive")
	}
	if c.MaxPoints <= 0 {
		problems = append(problems, "MAX_POINTS must be positive")
	}
	if c.PointsPerCorrect <= 0 {
		problems = append(problems, "POINTS_PER_CORRECT must be positive")
	}
	if c.PointsPerCorrect > c.MaxPoints {
		problems = append(problems, "POINTS_PER_CORRECT cannot exceed MAX_POINTS")
	}
	if c.QuizInterval <= 0 {
		problems = append(problems, "QUIZ_INTERVAL must be positive")
	}
	if c.QuizSize <= 0 {
		problems = append(problems, "QUIZ_SIZE must be positive")
	}
	if c.MinViewedForQuiz <= 0 {
		problems = append(problems, "MIN_VIEWED_FOR_QUIZ must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
