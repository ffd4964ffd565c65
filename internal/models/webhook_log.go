package models

import (
	"time"
)

// WebhookLog records every partner webhook delivery with the raw
// request and the response we returned, keyed by the partner
// transaction id for manual audit.
type WebhookLog struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventType     string    `gorm:"column:event_type;size:50;not null" json:"event_type"`
	Request       string    `gorm:"column:request;type:longtext" json:"request"`
	Response      string    `gorm:"column:response;type:longtext" json:"response"`
	Status        int       `gorm:"column:status;default:0" json:"status"`
	TransactionId string    `gorm:"column:transaction_id;size:255;index" json:"transaction_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WebhookLog) TableName() string {
	return "webhook_logs"
}
