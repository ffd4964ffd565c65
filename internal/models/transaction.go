package models

import (
	"time"
)

// Transaction kinds
const (
	KindCredit            = "credit"
	KindDebit             = "debit"
	KindWithdrawalRequest = "withdrawal_request"
)

// Transaction statuses. Transitions are forward-only:
// pending -> confirmed | failed for cashback credits,
// pending -> completed | failed for withdrawal requests.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusFailed    = "failed"
	StatusCompleted = "completed"
)

type Transaction struct {
	ID            int     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId        int     `gorm:"column:user_id;not null;index:idx_trx_user_status" json:"user_id"`
	TransactionNo string  `gorm:"column:transaction_no;size:255;not null;index" json:"transaction_no"`
	Amount        float64 `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Kind          string  `gorm:"column:kind;size:50;not null" json:"kind"`
	Status        string  `gorm:"column:status;size:20;not null;default:pending;index:idx_trx_user_status" json:"status"`
	Description   string  `gorm:"column:description;type:text" json:"description"`

	// Correlation columns. The partner transaction id carries a
	// uniqueness constraint so duplicate webhook deliveries are caught
	// by an indexed lookup rather than a scan over description text.
	ExternalTransactionId *string `gorm:"column:external_transaction_id;size:255;uniqueIndex" json:"external_transaction_id"`
	ClickId               string  `gorm:"column:click_id;size:64;index" json:"click_id"`

	// Advisory marker set by the partner confirmation webhook.
	// Funds move only on admin approval.
	PartnerConfirmedAt *time.Time `gorm:"column:partner_confirmed_at" json:"partner_confirmed_at"`
	FailureReason      string     `gorm:"column:failure_reason;size:255" json:"failure_reason"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
