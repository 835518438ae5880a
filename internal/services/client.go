package services

import (
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/gateway"
	"github.com/paulinho121/organizador/internal/models"
)

// ClientService owns the client list cycle: scoped load, form submit
// (insert or full-overwrite update), delete, in-memory filter.
type ClientService struct{ DB *gorm.DB }

func NewClientService(db *gorm.DB) *ClientService { return &ClientService{DB: db} }

// ClientDraft carries the create/edit form fields.
type ClientDraft struct {
	Name        string
	ContactInfo string
	Address     string
}

// Load replaces the list wholesale with the user's clients, name ascending.
func (s *ClientService) Load(sc gateway.Scope) ([]models.Client, error) {
	var clients []models.Client
	if err := gateway.List(sc, &clients, gateway.Order("name asc")); err != nil {
		log.Printf("erro ao carregar clientes: %v", err)
		return nil, err
	}
	return clients, nil
}

// Names loads just id+name pairs for the client selects on other pages.
func (s *ClientService) Names(sc gateway.Scope) ([]models.Client, error) {
	var clients []models.Client
	if err := gateway.List(sc, &clients, gateway.Select("id, name"), gateway.Order("name asc")); err != nil {
		log.Printf("erro ao carregar clientes: %v", err)
		return nil, err
	}
	return clients, nil
}

// Submit inserts a new client, or overwrites every draft field of the row
// being edited when editingID is non-zero.
func (s *ClientService) Submit(sc gateway.Scope, editingID uint, d ClientDraft) error {
	if editingID != 0 {
		return sc.Update(&models.Client{}, editingID, map[string]any{
			"name":         d.Name,
			"contact_info": d.ContactInfo,
			"address":      d.Address,
		})
	}
	c := models.Client{UserID: sc.UserID(), Name: d.Name, ContactInfo: d.ContactInfo, Address: d.Address}
	return sc.Insert(&c)
}

func (s *ClientService) Delete(sc gateway.Scope, id uint) error {
	return gateway.Delete[models.Client](sc, id)
}

// FilterClients applies a case-insensitive substring match over name, contact
// info and address. Purely in-memory; never re-queries.
func FilterClients(clients []models.Client, term string) []models.Client {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return clients
	}
	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.ContactInfo), term) ||
			strings.Contains(strings.ToLower(c.Address), term) {
			out = append(out, c)
		}
	}
	return out
}
