package models

import (
	"time"
)

// Activity is the append-only audit feed. Writes are fire-and-forget;
// a failed activity append never fails a money operation.
type Activity struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId    int       `gorm:"column:user_id;not null;index" json:"user_id"`
	Type      string    `gorm:"column:type;size:50;not null" json:"type"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Activity) TableName() string {
	return "activities"
}
