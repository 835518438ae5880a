package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/gateway"
	"github.com/paulinho121/organizador/internal/models"
)

// DashboardStats is the read-only aggregate shown on the dashboard.
type DashboardStats struct {
	MeetingsToday      int64   `json:"meetings"`
	Clients            int64   `json:"clients"`
	Sales              int64   `json:"sales"`
	PendingReminders   int64   `json:"reminders"`
	PendingQuotes      int64   `json:"pendingQuotesCount"`
	PendingQuotesValue float64 `json:"pendingQuotesValue"`
	TotalSalesValue    float64 `json:"totalSalesValue"`
	TotalCommission    float64 `json:"totalCommission"`
}

// DashboardService issues five independent scoped reads and joins them before
// returning. No writes.
type DashboardService struct{ DB *gorm.DB }

func NewDashboardService(db *gorm.DB) *DashboardService { return &DashboardService{DB: db} }

// Load runs the five reads concurrently; each goroutine writes disjoint
// fields of the result, with the errgroup wait as the join barrier.
func (s *DashboardService) Load(ctx context.Context, sc gateway.Scope) (DashboardStats, error) {
	var st DashboardStats
	today := time.Now().Format("2006-01-02")

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := gateway.Count[models.Meeting](sc, gateway.Where("date >= ?", today))
		st.MeetingsToday = n
		return err
	})
	g.Go(func() error {
		n, err := gateway.Count[models.Client](sc)
		st.Clients = n
		return err
	})
	g.Go(func() error {
		var sales []models.Sale
		if err := gateway.List(sc, &sales, gateway.Select("value, commission_value")); err != nil {
			return err
		}
		st.Sales = int64(len(sales))
		for _, sale := range sales {
			st.TotalSalesValue += sale.Value
			st.TotalCommission += sale.CommissionValue
		}
		return nil
	})
	g.Go(func() error {
		n, err := gateway.Count[models.Reminder](sc, gateway.Where("is_completed = ?", false))
		st.PendingReminders = n
		return err
	})
	g.Go(func() error {
		var quotes []models.Quote
		if err := gateway.List(sc, &quotes, gateway.Select("value"), gateway.Where("status = ?", models.QuoteStatusPending)); err != nil {
			return err
		}
		st.PendingQuotes = int64(len(quotes))
		for _, q := range quotes {
			st.PendingQuotesValue += q.Value
		}
		return nil
	})
	err := g.Wait()
	return st, err
}
