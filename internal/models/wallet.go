package models

import (
	"time"
)

// Wallet tracks the three cashback buckets per user plus the lifetime
// total. All balance columns are mutated exclusively through atomic
// relative updates; total_cashback is monotonically non-decreasing.
type Wallet struct {
	ID                int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId            int       `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	TotalCashback     float64   `gorm:"column:total_cashback;type:decimal(20,2);default:0.00" json:"total_cashback"`
	AvailableCashback float64   `gorm:"column:available_cashback;type:decimal(20,2);default:0.00" json:"available_cashback"`
	PendingCashback   float64   `gorm:"column:pending_cashback;type:decimal(20,2);default:0.00" json:"pending_cashback"`
	WithdrawnCashback float64   `gorm:"column:withdrawn_cashback;type:decimal(20,2);default:0.00" json:"withdrawn_cashback"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}
