package rules

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Breakdown is the result of a cashback calculation. Monetary amounts
// are floored to the cent; the floor (never round-to-nearest) keeps
// repeated calculations bit-for-bit reproducible and favors the
// platform on the sub-cent remainder.
type Breakdown struct {
	GrossCashback float64 `json:"gross_cashback"`
	PlatformFee   float64 `json:"platform_fee"`
	NetCashback   float64 `json:"net_cashback"`
	EffectiveRate float64 `json:"effective_rate"`
	IsEligible    bool    `json:"is_eligible"`
	Reason        string  `json:"reason"`
}

// Summary renders the human-auditable breakdown embedded in the
// transaction description.
func (b Breakdown) Summary() string {
	if !b.IsEligible {
		return b.Reason
	}
	return fmt.Sprintf("net %.2f (gross %.2f, fee %.2f, rate %.4f)",
		b.NetCashback, b.GrossCashback, b.PlatformFee, b.EffectiveRate)
}

// Engine is a pure calculator: no I/O, no state beyond its config,
// safe for concurrent use from any number of handlers.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Calculate maps (purchase amount, user tier, merchant category) to a
// cashback breakdown. Unknown tiers fall back to Bronze, unknown
// categories to Default; neither is an error.
func (e *Engine) Calculate(purchaseAmount float64, userTier, merchantCategory string) Breakdown {
	amount := decimal.NewFromFloat(purchaseAmount)

	if amount.LessThan(e.cfg.MinTransaction) {
		return Breakdown{
			Reason: fmt.Sprintf("ineligible: purchase amount %.2f below minimum threshold %s",
				purchaseAmount, e.cfg.MinTransaction.StringFixed(2)),
		}
	}

	multiplier, ok := e.cfg.TierMultipliers[userTier]
	if !ok {
		multiplier = e.cfg.TierMultipliers[DefaultTier]
	}
	bonus, ok := e.cfg.CategoryBonuses[merchantCategory]
	if !ok {
		bonus = e.cfg.CategoryBonuses[DefaultCategory]
	}

	effectiveRate := e.cfg.BaseRate.Mul(multiplier).Add(bonus)
	gross := amount.Mul(effectiveRate)
	if gross.GreaterThan(e.cfg.MaxCashbackPerTransaction) {
		gross = e.cfg.MaxCashbackPerTransaction
	}
	fee := gross.Mul(e.cfg.PlatformFeeRate)
	net := gross.Sub(fee)

	return Breakdown{
		GrossCashback: floorCents(gross),
		PlatformFee:   floorCents(fee),
		NetCashback:   floorCents(net),
		EffectiveRate: effectiveRate.InexactFloat64(),
		IsEligible:    true,
	}
}

func floorCents(d decimal.Decimal) float64 {
	f, _ := d.Mul(decimal.NewFromInt(100)).Floor().Div(decimal.NewFromInt(100)).Float64()
	return f
}
