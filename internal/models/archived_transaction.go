package models

import (
	"time"
)

// ArchivedTransaction holds terminal transactions moved out of the hot
// table by the nightly archive job. Pending rows are never archived.
type ArchivedTransaction struct {
	ID                    uint    `gorm:"primaryKey"`
	UserId                int     `gorm:"index"`
	TransactionNo         string  `gorm:"type:varchar(255);index"`
	Amount                float64 `gorm:"type:decimal(20,2)"`
	Kind                  string  `gorm:"type:varchar(50)"`
	Status                string  `gorm:"type:varchar(20)"`
	Description           string
	ExternalTransactionId *string `gorm:"type:varchar(255);index"`
	ClickId               string  `gorm:"type:varchar(64)"`
	FailureReason         string  `gorm:"type:varchar(255)"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (ArchivedTransaction) TableName() string {
	return "archived_transactions"
}
