// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	LogLevel      string
	DevMode       bool    // Pretty console logging
	PricesCSV     string  // Path to the wide daily-price CSV
	ReportsDir    string  // Where analysis result artifacts are written
	Symbols       []string
	StartDate     time.Time
	EndDate       time.Time
	RiskFreePct   float64 // Annual risk-free rate as a percentage (5.0 = 5%)
	MaxConcurrent int     // Simultaneous analyses
	MaxFillGap    int     // Forward-fill gap limit
	TolerancePct  float64 // Reconciliation tolerance
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	reportsDir, err := filepath.Abs(getEnv("REPORTS_DIR", "reports"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reports directory path: %w", err)
	}

	cfg := &Config{
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DevMode:       getEnvAsBool("DEV_MODE", false),
		PricesCSV:     getEnv("PRICES_CSV", "data/prices.csv"),
		ReportsDir:    reportsDir,
		Symbols:       splitSymbols(getEnv("SYMBOLS", "")),
		RiskFreePct:   getEnvAsFloat("RISK_FREE_RATE", 0.0),
		MaxConcurrent: getEnvAsInt("MAX_CONCURRENT_ANALYSES", 4),
		MaxFillGap:    getEnvAsInt("MAX_FILL_GAP", 5),
		TolerancePct:  getEnvAsFloat("RECONCILE_TOLERANCE_PCT", 5.0),
	}

	if cfg.StartDate, err = parseDate("START_DATE"); err != nil {
		return nil, err
	}
	if cfg.EndDate, err = parseDate("END_DATE"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDate(key string) (time.Time, error) {
	value := os.Getenv(key)
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return date, nil
}

func splitSymbols(value string) []string {
	if value == "" {
		return nil
	}
	var symbols []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			symbols = append(symbols, part)
		}
	}
	return symbols
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
