package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/summary"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Tally", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "http://localhost:8080/api/expenses", cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, expense.DefaultCategories, cfg.ExpenseCategories())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())

	f, err := cfg.InitialFilter()
	require.NoError(t, err)
	assert.Equal(t, summary.FilterAll, f)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_BASE", "https://expenses.example.com/api/expenses")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("CATEGORIES", "Groceries,Rent")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FILTER", "Rent")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "https://expenses.example.com/api/expenses", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, expense.Categories{"Groceries", "Rent"}, cfg.ExpenseCategories())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())

	f, err := cfg.InitialFilter()
	require.NoError(t, err)
	assert.Equal(t, summary.Filter("Rent"), f)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "DuplicateCategory", env: map[string]string{"CATEGORIES": "Food,Food"}},
		{name: "RelativeBase", env: map[string]string{"API_BASE": "/api/expenses"}},
		{name: "BadPort", env: map[string]string{"PORT": "eighty"}},
		{name: "UnknownFilter", env: map[string]string{"FILTER": "Travel"}},
		{name: "FilterOutsideCategories", env: map[string]string{"CATEGORIES": "Groceries,Rent", "FILTER": "Food"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
