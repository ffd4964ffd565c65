package models

import (
	"time"
)

// Click records a visit through a tracked affiliate link. The click_id
// is an opaque token embedded in the outbound redirect URL; it is the
// join key the partner echoes back in purchase webhooks. Rows are
// immutable and may stay unmatched forever if no purchase follows.
type Click struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId    int       `gorm:"column:user_id;not null;index" json:"user_id"`
	OfferId   int       `gorm:"column:offer_id;not null" json:"offer_id"`
	StoreId   int       `gorm:"column:store_id;not null" json:"store_id"`
	ClickId   string    `gorm:"column:click_id;size:64;not null;uniqueIndex" json:"click_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Click) TableName() string {
	return "clicks"
}
