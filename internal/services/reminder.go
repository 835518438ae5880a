package services

import (
	"log"

	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/gateway"
	"github.com/paulinho121/organizador/internal/models"
)

// ReminderService owns the reminder list cycle and the completion flip.
type ReminderService struct{ DB *gorm.DB }

func NewReminderService(db *gorm.DB) *ReminderService { return &ReminderService{DB: db} }

type ReminderDraft struct {
	Title       string
	Description string
	DueDate     string // "2006-01-02" or empty
}

// Load returns the user's reminders ordered by due date ascending.
func (s *ReminderService) Load(sc gateway.Scope) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := gateway.List(sc, &reminders, gateway.Order("due_date asc")); err != nil {
		log.Printf("erro ao carregar lembretes: %v", err)
		return nil, err
	}
	return reminders, nil
}

// Submit inserts a new reminder forced to not-completed, or overwrites the
// edited row's draft fields (completion state is untouched by edits).
func (s *ReminderService) Submit(sc gateway.Scope, editingID uint, d ReminderDraft) error {
	if editingID != 0 {
		return sc.Update(&models.Reminder{}, editingID, map[string]any{
			"title":       d.Title,
			"description": d.Description,
			"due_date":    d.DueDate,
		})
	}
	r := models.Reminder{
		UserID:      sc.UserID(),
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		IsCompleted: false,
	}
	return sc.Insert(&r)
}

// ToggleComplete writes the negation of the current completion state.
func (s *ReminderService) ToggleComplete(sc gateway.Scope, id uint, current bool) error {
	return sc.UpdateColumn(&models.Reminder{}, id, "is_completed", !current)
}

func (s *ReminderService) Delete(sc gateway.Scope, id uint) error {
	return gateway.Delete[models.Reminder](sc, id)
}

// PartitionReminders splits the list into pending and completed, preserving
// order within each half.
func PartitionReminders(reminders []models.Reminder) (pending, completed []models.Reminder) {
	for _, r := range reminders {
		if r.IsCompleted {
			completed = append(completed, r)
		} else {
			pending = append(pending, r)
		}
	}
	return pending, completed
}
