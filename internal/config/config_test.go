package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celyn/geirfa/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		DBPath:            "test.db",
		LogLevel:          "INFO",
		ImportWorkerCount: 2,
		ImportQueueSize:   32,
		MaxPoints:         50,
		PointsPerCorrect:  10,
		QuizInterval:      5,
		QuizSize:          2,
		MinViewedForQuiz:  2,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "LOUD"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_LowercaseLogLevelAccepted(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "debug"

	assert.NoError(t, cfg.Validate())
}

func TestValidate_EngineTuning(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*config.Config)
		expected string
	}{
		{
			name:     "zero quiz interval",
			mutate:   func(c *config.Config) { c.QuizInterval = 0 },
			expected: "QUIZ_INTERVAL",
		},
		{
			name:     "zero quiz size",
			mutate:   func(c *config.Config) { c.QuizSize = 0 },
			expected: "QUIZ_SIZE",
		},
		{
			name:     "zero viewed gate",
			mutate:   func(c *config.Config) { c.MinViewedForQuiz = 0 },
			expected: "MIN_VIEWED_FOR_QUIZ",
		},
		{
			name:     "negative max points",
			mutate:   func(c *config.Config) { c.MaxPoints = -1 },
			expected: "MAX_POINTS",
		},
		{
			name:     "award above cap",
			mutate:   func(c *config.Config) { c.PointsPerCorrect = 60 },
			expected: "POINTS_PER_CORRECT cannot exceed MAX_POINTS",
		},
		{
			name:     "zero import workers",
			mutate:   func(c *config.Config) { c.ImportWorkerCount = 0 },
			expected: "IMPORT_WORKER_COUNT",
		},
		{
			name:     "zero import queue",
			mutate:   func(c *config.Config) { c.ImportQueueSize = 0 },
			expected: "IMPORT_QUEUE_SIZE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
	assert.Contains(t, err.Error(), "QUIZ_INTERVAL")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("QUIZ_INTERVAL", "7")
	t.Setenv("QUIZ_SIZE", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 7, cfg.QuizInterval)
	assert.Equal(t, 2, cfg.QuizSize, "invalid values fall back to the default")

	os.Unsetenv("ADDR")
	os.Unsetenv("DB_PATH")
	os.Unsetenv("QUIZ_INTERVAL")
	os.Unsetenv("QUIZ_SIZE")
}
