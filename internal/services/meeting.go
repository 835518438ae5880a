package services

import (
	"log"

	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/gateway"
	"github.com/paulinho121/organizador/internal/models"
)

// MeetingService owns the meeting list cycle.
type MeetingService struct{ DB *gorm.DB }

func NewMeetingService(db *gorm.DB) *MeetingService { return &MeetingService{DB: db} }

type MeetingDraft struct {
	Title       string
	Description string
	Pauta       string
	Date        string // "2006-01-02"
	Time        string // "15:04"
	ClientID    *uint
}

// Load returns the user's meetings with the related client preloaded for
// display, ordered by date then time ascending.
func (s *MeetingService) Load(sc gateway.Scope) ([]models.Meeting, error) {
	var meetings []models.Meeting
	if err := gateway.List(sc, &meetings, gateway.Preload("Client"), gateway.Order("date asc, time asc")); err != nil {
		log.Printf("erro ao carregar reuniões: %v", err)
		return nil, err
	}
	return meetings, nil
}

func (s *MeetingService) Submit(sc gateway.Scope, editingID uint, d MeetingDraft) error {
	if editingID != 0 {
		return sc.Update(&models.Meeting{}, editingID, map[string]any{
			"title":       d.Title,
			"description": d.Description,
			"pauta":       d.Pauta,
			"date":        d.Date,
			"time":        d.Time,
			"client_id":   d.ClientID,
		})
	}
	m := models.Meeting{
		UserID:      sc.UserID(),
		Title:       d.Title,
		Description: d.Description,
		Pauta:       d.Pauta,
		Date:        d.Date,
		Time:        d.Time,
		ClientID:    d.ClientID,
	}
	return sc.Insert(&m)
}

func (s *MeetingService) Delete(sc gateway.Scope, id uint) error {
	return gateway.Delete[models.Meeting](sc, id)
}
