package models

import (
	"time"
)

// Referral links a referred user to their referrer. BonusPaid is the
// one-time-claim flag: the signup bonus is granted by an atomic
// conditional update on it, so two concurrently confirming
// transactions cannot both fire the bonus.
type Referral struct {
	ID          int        `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferrerId  int        `gorm:"column:referrer_id;not null;index" json:"referrer_id"`
	ReferredId  int        `gorm:"column:referred_id;not null;uniqueIndex" json:"referred_id"`
	Earnings    float64    `gorm:"column:earnings;type:decimal(20,2);default:0.00" json:"earnings"`
	BonusPaid   bool       `gorm:"column:bonus_paid;default:false" json:"bonus_paid"`
	BonusPaidAt *time.Time `gorm:"column:bonus_paid_at" json:"bonus_paid_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Referral) TableName() string {
	return "referrals"
}
