package handlers

import (
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/httpx"
	"github.com/paulinho121/organizador/internal/middleware"
	"github.com/paulinho121/organizador/internal/models"
	"github.com/paulinho121/organizador/internal/services"
	"github.com/paulinho121/organizador/internal/view"
)

type DashboardHandler struct {
	DB  *gorm.DB
	Svc *services.DashboardService
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db, Svc: services.NewDashboardService(db)}
}

// Show: GET /dashboard – read-only aggregate page.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	stats, err := h.Svc.Load(r.Context(), sc)
	if err != nil {
		// load failures never block the page; render the zeroed stats
		log.Printf("erro ao carregar dados do dashboard: %v", err)
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, stats)
		return
	}
	data := map[string]any{"Stats": stats}
	var user models.User
	if err := h.DB.First(&user, sc.UserID()).Error; err == nil {
		data["User"] = user
	}
	if flash, ok := middleware.PopFlash(w, r); ok {
		data["Flash"] = flash
	}
	if err := view.Render(w, r, "dashboard.html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template render error: " + err.Error())); werr != nil {
			_ = werr
		}
	}
}
