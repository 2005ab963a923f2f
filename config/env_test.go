package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30, cfg.Policy.MaxConcurrentPercentage)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHrs)
	assert.True(t, cfg.Accrual.DaysPerMonth.IsZero())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_PERCENTAGE", "50")
	t.Setenv("ACCRUAL_DAYS_PER_MONTH", "2.5")
	t.Setenv("PORT", "9090")

	cfg := LoadConfig()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 50, cfg.Policy.MaxConcurrentPercentage)
	assert.True(t, cfg.Accrual.DaysPerMonth.Equal(decimal.RequireFromString("2.5")))
}

func TestLoadConfigRejectsBadPercentage(t *testing.T) {
	tests := []string{"abc", "0", "-10"}
	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			t.Setenv("MAX_CONCURRENT_PERCENTAGE", value)
			cfg := LoadConfig()
			assert.Equal(t, 30, cfg.Policy.MaxConcurrentPercentage)
		})
	}
}

func TestDBConfigDSN(t *testing.T) {
	db := DBConfig{Host: "db", Port: "5433", User: "app", Password: "pw", Name: "planner"}
	assert.Equal(t, "host=db port=5433 user=app password=pw dbname=planner sslmode=disable", db.DSN())
}
