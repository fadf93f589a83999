// Package config loads service configuration from environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"spendtrack/internal/core"
)

type Config struct {
	// HTTP server
	Port string

	// Database
	SQLiteDBPath string

	// AMQP (optional; empty URL disables event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export (worker only; empty spreadsheet id disables it)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Extraction
	ExtractorModel   string
	ExtractorTimeout time.Duration

	// Requests without an explicit user are attributed to this id.
	DefaultUser string

	// BudgetJSON overrides the built-in monthly budget; a JSON object
	// of category name to limit in cents, e.g. {"coffee": 5000}.
	BudgetJSON string

	// Worker
	SyncBatchSize int
	SyncInterval  time.Duration

	LogLevel string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8081"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/spendtrack.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "spendtrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sync_transactions"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Transactions"),

		ExtractorModel:   getEnv("EXTRACTOR_MODEL", ""),
		ExtractorTimeout: getEnvDuration("EXTRACTOR_TIMEOUT", 10*time.Second),

		DefaultUser: getEnv("DEFAULT_USER", "default"),
		BudgetJSON:  getEnv("BUDGET_JSON", ""),

		SyncBatchSize: getEnvInt("SYNC_BATCH_SIZE", 50),
		SyncInterval:  getEnvDuration("SYNC_INTERVAL", 30*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port %q: must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.SQLiteDBPath == "" {
		errs = append(errs, "SQLITE_DB_PATH cannot be empty")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL %q: %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme %q: must be amqp or amqps", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP_EXCHANGE cannot be empty when AMQP_URL is set")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP_QUEUE cannot be empty when AMQP_URL is set")
		}
	}

	if c.ExtractorTimeout <= 0 {
		errs = append(errs, "EXTRACTOR_TIMEOUT must be positive")
	}
	if c.SyncBatchSize < 1 {
		errs = append(errs, "SYNC_BATCH_SIZE must be at least 1")
	}
	if c.SyncInterval < time.Second {
		errs = append(errs, "SYNC_INTERVAL must be at least 1s")
	}

	if c.BudgetJSON != "" {
		if _, err := parseBudgetJSON(c.BudgetJSON); err != nil {
			errs = append(errs, fmt.Sprintf("invalid BUDGET_JSON: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Budget resolves the monthly budget, applying BUDGET_JSON overrides on
// top of the defaults.
func (c *Config) Budget() (core.Budget, error) {
	budget := core.DefaultBudget()
	if c.BudgetJSON == "" {
		return budget, nil
	}
	overrides, err := parseBudgetJSON(c.BudgetJSON)
	if err != nil {
		return nil, err
	}
	for cat, cents := range overrides {
		budget[cat] = core.Money{Cents: cents}
	}
	return budget, nil
}

func parseBudgetJSON(raw string) (map[core.Category]int64, error) {
	var byName map[string]int64
	if err := json.Unmarshal([]byte(raw), &byName); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	out := make(map[core.Category]int64, len(byName))
	for name, cents := range byName {
		cat := core.Category(name)
		if !cat.Valid() {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		if cents < 0 {
			return nil, fmt.Errorf("negative limit for %q", name)
		}
		out[cat] = cents
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
