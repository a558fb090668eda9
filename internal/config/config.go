package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/summary"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Tally"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	API struct {
		BaseURL string `envconfig:"API_BASE" default:"http://localhost:8080/api/expenses"`
		// Zero leaves requests without a deadline.
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"0s"`
	}

	Server struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
		File  string `envconfig:"LOG_FILE" default:"tally.log"`
	}

	Categories []string `envconfig:"CATEGORIES" default:"Food,Transport,Bills,Entertainment,Other"`

	// Filter the expense list starts with: All or one of Categories.
	Filter string `envconfig:"FILTER" default:"All"`
}

// ExpenseCategories returns the configured category set in order.
func (c *Config) ExpenseCategories() expense.Categories {
	return expense.NewCategories(c.Categories)
}

// InitialFilter resolves Filter against the configured categories.
func (c *Config) InitialFilter() (summary.Filter, error) {
	return summary.New(c.ExpenseCategories()).ParseFilter(c.Filter)
}

// LogLevel parses Log.Level, falling back to info.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}

func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return errors.New("at least one category is required")
	}

	seen := make(map[string]struct{}, len(c.Categories))
	for _, cat := range c.Categories {
		if cat == "" {
			return errors.New("empty category name")
		}

		if _, dup := seen[cat]; dup {
			return fmt.Errorf("duplicate category %q", cat)
		}

		seen[cat] = struct{}{}
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("API_BASE must be an absolute URL, got %q", c.API.BaseURL)
	}

	if _, err := c.InitialFilter(); err != nil {
		return fmt.Errorf("FILTER: %w", err)
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
