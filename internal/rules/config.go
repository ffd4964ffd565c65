package rules

import (
	"os"

	"github.com/shopspring/decimal"
)

// Config holds every tunable of the cashback calculation. Defaults
// mirror production values; each scalar can be overridden from the
// environment so ops can retune rates without a deploy.
type Config struct {
	// PlatformFeeRate is retained from the capped gross cashback.
	PlatformFeeRate decimal.Decimal
	// BaseRate applies to all purchases before tiers and bonuses.
	BaseRate decimal.Decimal
	// TierMultipliers apply multiplicatively to the base rate.
	TierMultipliers map[string]decimal.Decimal
	// CategoryBonuses apply additively to the effective rate.
	CategoryBonuses map[string]decimal.Decimal
	// MinTransaction is the eligibility threshold on purchase amount.
	MinTransaction decimal.Decimal
	// MaxCashbackPerTransaction caps the gross cashback.
	MaxCashbackPerTransaction decimal.Decimal
}

const (
	DefaultTier     = "Bronze"
	DefaultCategory = "Default"
)

func DefaultConfig() Config {
	return Config{
		PlatformFeeRate: decimal.NewFromFloat(0.20),
		BaseRate:        decimal.NewFromFloat(0.02),
		TierMultipliers: map[string]decimal.Decimal{
			"Bronze":   decimal.NewFromFloat(1.0),
			"Silver":   decimal.NewFromFloat(1.25),
			"Gold":     decimal.NewFromFloat(1.5),
			"Platinum": decimal.NewFromFloat(2.0),
		},
		CategoryBonuses: map[string]decimal.Decimal{
			"Groceries":   decimal.NewFromFloat(0.01),
			"Travel":      decimal.NewFromFloat(0.005),
			"Electronics": decimal.Zero,
			"Default":     decimal.Zero,
		},
		MinTransaction:            decimal.NewFromFloat(10.00),
		MaxCashbackPerTransaction: decimal.NewFromFloat(50.00),
	}
}

// LoadConfig returns the defaults with any environment overrides applied.
func LoadConfig() Config {
	cfg := DefaultConfig()
	cfg.PlatformFeeRate = envDecimal("CASHBACK_PLATFORM_FEE_RATE", cfg.PlatformFeeRate)
	cfg.BaseRate = envDecimal("CASHBACK_BASE_RATE", cfg.BaseRate)
	cfg.MinTransaction = envDecimal("CASHBACK_MIN_TRANSACTION", cfg.MinTransaction)
	cfg.MaxCashbackPerTransaction = envDecimal("CASHBACK_MAX_PER_TRANSACTION", cfg.MaxCashbackPerTransaction)
	return cfg
}

func envDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return d
}
