package services

import (
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/gateway"
	"github.com/paulinho121/organizador/internal/models"
)

// SaleService owns the sale list cycle. Commission is derived server-side on
// every write path.
type SaleService struct{ DB *gorm.DB }

func NewSaleService(db *gorm.DB) *SaleService { return &SaleService{DB: db} }

type SaleDraft struct {
	ClientID             *uint
	ProductService       string
	Value                float64
	CommissionPercentage float64
	SaleDate             string // "2006-01-02"
}

// Load returns the user's sales with the related client preloaded, most
// recent sale date first.
func (s *SaleService) Load(sc gateway.Scope) ([]models.Sale, error) {
	var sales []models.Sale
	if err := gateway.List(sc, &sales, gateway.Preload("Client"), gateway.Order("sale_date desc")); err != nil {
		log.Printf("erro ao carregar vendas: %v", err)
		return nil, err
	}
	return sales, nil
}

// Submit recomputes the commission from the draft's value and percentage,
// then inserts or fully overwrites the edited row.
func (s *SaleService) Submit(sc gateway.Scope, editingID uint, d SaleDraft) error {
	commission := CommissionValue(d.Value, d.CommissionPercentage)
	if editingID != 0 {
		return sc.Update(&models.Sale{}, editingID, map[string]any{
			"client_id":             d.ClientID,
			"product_service":       d.ProductService,
			"value":                 d.Value,
			"commission_percentage": d.CommissionPercentage,
			"commission_value":      commission,
			"sale_date":             d.SaleDate,
		})
	}
	sale := models.Sale{
		UserID:               sc.UserID(),
		ClientID:             d.ClientID,
		ProductService:       d.ProductService,
		Value:                d.Value,
		CommissionPercentage: d.CommissionPercentage,
		CommissionValue:      commission,
		SaleDate:             d.SaleDate,
	}
	return sc.Insert(&sale)
}

func (s *SaleService) Delete(sc gateway.Scope, id uint) error {
	return gateway.Delete[models.Sale](sc, id)
}

// Totals sums value and commission over the in-memory list (the sales page
// summary cards).
func Totals(sales []models.Sale) (value, commission float64) {
	for _, sale := range sales {
		value += sale.Value
		commission += sale.CommissionValue
	}
	return value, commission
}

// FilterSales matches term (case-insensitive) against product, client name
// and the value rendered as a 2-decimal string. In-memory only.
func FilterSales(sales []models.Sale, term string) []models.Sale {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return sales
	}
	out := make([]models.Sale, 0, len(sales))
	for _, sale := range sales {
		name := ""
		if sale.Client != nil {
			name = sale.Client.Name
		}
		if strings.Contains(strings.ToLower(sale.ProductService), term) ||
			strings.Contains(strings.ToLower(name), term) ||
			strings.Contains(strconv.FormatFloat(sale.Value, 'f', 2, 64), term) {
			out = append(out, sale)
		}
	}
	return out
}
