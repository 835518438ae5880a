package models

import "time"

// Meeting entity. Date and Time are stored as ISO strings ("2006-01-02",
// "15:04") so the gateway's lexicographic ordering matches chronological
// order without timezone handling.
type Meeting struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Pauta       string  // agenda livre, um tópico por linha
	Date        string  `gorm:"size:10;not null;index"`
	Time        string  `gorm:"size:5;not null"`
	ClientID    *uint   `gorm:"index"`
	Client      *Client `gorm:"foreignKey:ClientID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m Meeting) GetUserID() uint { return m.UserID }
