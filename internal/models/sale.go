package models

import "time"

// Sale entity. CommissionValue is derived (value * percentage / 100) and is
// recomputed on every write; submitted values are never trusted.
type Sale struct {
	ID                   uint    `gorm:"primaryKey"`
	UserID               uint    `gorm:"not null;index"`
	ClientID             *uint   `gorm:"index"`
	Client               *Client `gorm:"foreignKey:ClientID"`
	ProductService       string  `gorm:"not null"`
	Value                float64 `gorm:"not null"`
	CommissionPercentage float64 `gorm:"not null"`
	CommissionValue      float64 `gorm:"not null"`
	SaleDate             string  `gorm:"size:10;not null;index"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (s Sale) GetUserID() uint { return s.UserID }
