package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CASHBACK_BASE_RATE", "0.05")
	t.Setenv("CASHBACK_MIN_TRANSACTION", "25")

	cfg := LoadConfig()

	assert.Equal(t, "0.05", cfg.BaseRate.String())
	assert.Equal(t, "25", cfg.MinTransaction.String())
	// Untouched values keep their defaults.
	assert.Equal(t, "0.2", cfg.PlatformFeeRate.String())
}

func TestLoadConfigIgnoresMalformedOverride(t *testing.T) {
	t.Setenv("CASHBACK_BASE_RATE", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, "0.02", cfg.BaseRate.String())
}
