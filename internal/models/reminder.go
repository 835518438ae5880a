package models

import "time"

// Reminder entity. DueDate is optional; empty string means no due date.
type Reminder struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	DueDate     string `gorm:"size:10;index"`
	IsCompleted bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r Reminder) GetUserID() uint { return r.UserID }
