package models

import "time"

// Quote status values. A converted quote keeps its row; only Status flips.
const (
	QuoteStatusPending  = "pendente"
	QuoteStatusAccepted = "aceito"
)

// Quote entity
type Quote struct {
	ID                   uint    `gorm:"primaryKey"`
	UserID               uint    `gorm:"not null;index"`
	ClientID             *uint   `gorm:"index"`
	Client               *Client `gorm:"foreignKey:ClientID"`
	ProductService       string  `gorm:"not null"`
	Value                float64
	CommissionPercentage float64
	QuoteDate            string `gorm:"size:10;index"`
	Status               string `gorm:"size:16;not null;default:'pendente'"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (q Quote) GetUserID() uint { return q.UserID }
