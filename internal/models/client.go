package models

import "time"

// Client entity
type Client struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"` // FK to User, owner
	Name        string `gorm:"not null;index"`
	ContactInfo string // telefone, e-mail, etc.
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c Client) GetUserID() uint { return c.UserID }
