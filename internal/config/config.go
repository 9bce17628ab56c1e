package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/bondflash/internal/logger"
)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	Timezone        string
	WorkerCount     int
	QueueSize       int
	FreezeSweepAt   string
	CatalogPath     string
	ReviewBatchSize int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		DBPath:          envOr("DB_PATH", "file:bondflash.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		Timezone:        envOr("TIMEZONE", "Local"),
		WorkerCount:     envIntOr("WORKER_COUNT", 2),
		QueueSize:       envIntOr("QUEUE_SIZE", 32),
		FreezeSweepAt:   envOr("FREEZE_SWEEP_AT", "00:05"),
		CatalogPath:     os.Getenv("CATALOG_PATH"),
		ReviewBatchSize: envIntOr("REVIEW_BATCH_SIZE", 20),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q must be one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("TIMEZONE %q: %v", c.Timezone, err))
	}
	if c.WorkerCount <= 0 {
		problems = append(problems, fmt.Sprintf("WORKER_COUNT must be positive, got %d", c.WorkerCount))
	}
	if c.QueueSize <= 0 {
		problems = append(problems, fmt.Sprintf("QUEUE_SIZE must be positive, got %d", c.QueueSize))
	}
	if _, err := time.Parse("15:04", c.FreezeSweepAt); err != nil {
		problems = append(problems, fmt.Sprintf("FREEZE_SWEEP_AT %q must be HH:MM", c.FreezeSweepAt))
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			problems = append(problems, fmt.Sprintf("CATALOG_PATH %q: %v", c.CatalogPath, err))
		}
	}
	if c.ReviewBatchSize <= 0 || c.ReviewBatchSize > 200 {
		problems = append(problems, fmt.Sprintf("REVIEW_BATCH_SIZE must be between 1 and 200, got %d", c.ReviewBatchSize))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location resolves Timezone, falling back to the local zone.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
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
