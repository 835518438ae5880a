package services

import (
	"log"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/gateway"
	"github.com/paulinho121/organizador/internal/models"
)

// QuoteService owns the quote list cycle and the quote-to-sale conversion.
type QuoteService struct{ DB *gorm.DB }

func NewQuoteService(db *gorm.DB) *QuoteService { return &QuoteService{DB: db} }

type QuoteDraft struct {
	ClientID             *uint
	ProductService       string
	Value                float64
	CommissionPercentage float64
	QuoteDate            string // "2006-01-02"
	Status               string
}

// Load returns the user's quotes with the related client preloaded, most
// recent quote date first.
func (s *QuoteService) Load(sc gateway.Scope) ([]models.Quote, error) {
	var quotes []models.Quote
	if err := gateway.List(sc, &quotes, gateway.Preload("Client"), gateway.Order("quote_date desc")); err != nil {
		log.Printf("erro ao carregar orçamentos: %v", err)
		return nil, err
	}
	return quotes, nil
}

func (s *QuoteService) Submit(sc gateway.Scope, editingID uint, d QuoteDraft) error {
	status := d.Status
	if status == "" {
		status = models.QuoteStatusPending
	}
	if editingID != 0 {
		return sc.Update(&models.Quote{}, editingID, map[string]any{
			"client_id":             d.ClientID,
			"product_service":       d.ProductService,
			"value":                 d.Value,
			"commission_percentage": d.CommissionPercentage,
			"quote_date":            d.QuoteDate,
			"status":                status,
		})
	}
	q := models.Quote{
		UserID:               sc.UserID(),
		ClientID:             d.ClientID,
		ProductService:       d.ProductService,
		Value:                d.Value,
		CommissionPercentage: d.CommissionPercentage,
		QuoteDate:            d.QuoteDate,
		Status:               status,
	}
	return sc.Insert(&q)
}

func (s *QuoteService) Delete(sc gateway.Scope, id uint) error {
	return gateway.Delete[models.Quote](sc, id)
}

// ConvertToSale turns a pending quote into a sale in two ordered steps:
// insert the copied sale first, then flip the quote's status to aceito.
// The sale's date is the conversion day, not the quote's date, and its owner
// is the quote's own user id. If the insert fails the status is left
// untouched; if the status update fails the inserted sale is not rolled back
// (no compensation, mirroring the two-step visible behavior).
func (s *QuoteService) ConvertToSale(sc gateway.Scope, quoteID uint) (*models.Sale, error) {
	var q models.Quote
	if err := gateway.First(sc, quoteID, &q); err != nil {
		log.Printf("erro ao carregar orçamento %d: %v", quoteID, err)
		return nil, err
	}
	sale := models.Sale{
		UserID:               q.UserID,
		ClientID:             q.ClientID,
		ProductService:       q.ProductService,
		Value:                q.Value,
		CommissionPercentage: q.CommissionPercentage,
		CommissionValue:      CommissionValue(q.Value, q.CommissionPercentage),
		SaleDate:             time.Now().Format("2006-01-02"),
	}
	owner := gateway.NewScope(s.DB, q.UserID)
	if err := owner.Insert(&sale); err != nil {
		log.Printf("erro ao converter orçamento %d em venda: %v", quoteID, err)
		return nil, err
	}
	if err := owner.UpdateColumn(&models.Quote{}, q.ID, "status", models.QuoteStatusAccepted); err != nil {
		log.Printf("venda %d criada mas status do orçamento %d não foi atualizado: %v", sale.ID, q.ID, err)
		return &sale, err
	}
	return &sale, nil
}

// FilterQuotes matches term (case-insensitive) against product, client name,
// status and the value rendered as a 2-decimal string. In-memory only.
func FilterQuotes(quotes []models.Quote, term string) []models.Quote {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return quotes
	}
	out := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		name := ""
		if q.Client != nil {
			name = q.Client.Name
		}
		if strings.Contains(strings.ToLower(q.ProductService), term) ||
			strings.Contains(strings.ToLower(name), term) ||
			strings.Contains(strings.ToLower(q.Status), term) ||
			strings.Contains(strconv.FormatFloat(q.Value, 'f', 2, 64), term) {
			out = append(out, q)
		}
	}
	return out
}
