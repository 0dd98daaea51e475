package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v9"

	"smartspend/internal/core"
)

type Config struct {
	// Storage
	DataBackend  string `env:"DATA_BACKEND" envDefault:"sqlite"`
	SQLiteDBPath string `env:"SQLITE_DB_PATH" envDefault:"./data/expenses.db"`

	// Export
	ExportPath string `env:"EXPORT_PATH" envDefault:"expenses.csv"`

	// Reports
	HighSpendingThreshold   core.Money `env:"HIGH_SPENDING_THRESHOLD" envDefault:"1000"`
	RecurringMinOccurrences int        `env:"RECURRING_MIN_OCCURRENCES" envDefault:"2"`
	CurrencySymbol          string     `env:"CURRENCY_SYMBOL" envDefault:"₹"`

	// Logging
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"WARN"`
}

var validBackends = []string{"sqlite", "memory"}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(core.Money{}): func(v string) (interface{}, error) {
				m, err := core.ParseAmount(v)
				if err != nil {
					return nil, fmt.Errorf("invalid amount %q: %w", v, err)
				}
				return m, nil
			},
		},
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if info, err := os.Stat(dir); err == nil && !info.IsDir() {
					errors = append(errors, fmt.Sprintf("SQLite database directory '%s' is not a directory", dir))
				}
			}
		}
	}

	if strings.TrimSpace(c.ExportPath) == "" {
		errors = append(errors, "export path cannot be empty")
	}

	if c.HighSpendingThreshold.Cents <= 0 {
		errors = append(errors, "high spending threshold must be a positive amount")
	}

	if c.RecurringMinOccurrences < 1 {
		errors = append(errors, fmt.Sprintf("invalid recurring min occurrences %d: must be at least 1", c.RecurringMinOccurrences))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}
