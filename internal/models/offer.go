package models

import (
	"time"
)

// Offer types
const (
	OfferTypeCashback = "cashback"
	OfferTypeCoupon   = "coupon"
	OfferTypeDeal     = "deal"
)

// Offer is the minimal catalog record this service needs: enough to
// resolve a tracked click to a store, a merchant category and a
// tracking URL. Catalog management itself lives elsewhere.
type Offer struct {
	ID           int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string  `gorm:"column:title;size:255;not null" json:"title"`
	StoreId      int     `gorm:"column:store_id;not null;index" json:"store_id"`
	Store        Store   `gorm:"foreignKey:StoreId" json:"store"`
	OfferType    string  `gorm:"column:offer_type;size:20;not null" json:"offer_type"`
	Category     string  `gorm:"column:category;size:100;default:Default" json:"category"`
	CashbackRate float64 `gorm:"column:cashback_rate;type:decimal(10,4);default:0" json:"cashback_rate"`
	// AvgOrderValue seeds the click-time cashback estimate before the
	// partner reports the real purchase amount.
	AvgOrderValue float64    `gorm:"column:avg_order_value;type:decimal(20,2);default:0.00" json:"avg_order_value"`
	TrackingUrl   string     `gorm:"column:tracking_url;size:500" json:"tracking_url"`
	ExpiryDate    *time.Time `gorm:"column:expiry_date" json:"expiry_date"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Offer) TableName() string {
	return "offers"
}
