package models

import (
	"time"
)

type Store struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;size:150;not null" json:"name"`
	Website   string    `gorm:"column:website;size:500" json:"website"`
	Category  string    `gorm:"column:category;size:100;default:Default" json:"category"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Store) TableName() string {
	return "stores"
}
