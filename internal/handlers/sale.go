package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/gateway"
	"github.com/paulinho121/organizador/internal/httpx"
	"github.com/paulinho121/organizador/internal/middleware"
	"github.com/paulinho121/organizador/internal/models"
	pdfgen "github.com/paulinho121/organizador/internal/pdf"
	"github.com/paulinho121/organizador/internal/services"
	"github.com/paulinho121/organizador/internal/validation"
	"github.com/paulinho121/organizador/internal/view"
)

type SaleHandler struct {
	DB      *gorm.DB
	Svc     *services.SaleService
	Clients *services.ClientService
}

func NewSaleHandler(db *gorm.DB) *SaleHandler {
	return &SaleHandler{DB: db, Svc: services.NewSaleService(db), Clients: services.NewClientService(db)}
}

// List: GET /sales – HTML with summary totals or JSON items; ?q= filters
// in-memory.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	sales, err := h.Svc.Load(sc)
	if err != nil {
		sales = nil
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	filtered := services.FilterSales(sales, q)
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": filtered, "total": len(filtered)})
		return
	}
	totalValue, totalCommission := services.Totals(sales)
	clients, _ := h.Clients.Names(sc)
	data := map[string]any{
		"Sales":           filtered,
		"Clients":         clients,
		"Query":           q,
		"TotalValue":      totalValue,
		"TotalCommission": totalCommission,
	}
	data["EditingClientID"] = uint(0)
	if flash, ok := middleware.PopFlash(w, r); ok {
		data["Flash"] = flash
	}
	if editID := queryID(r); editID != 0 {
		var s models.Sale
		if err := gateway.First(sc, editID, &s); err == nil {
			data["Editing"] = s
			if s.ClientID != nil {
				data["EditingClientID"] = *s.ClientID
			}
		}
	}
	if err := view.Render(w, r, "sales.html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template render error: " + err.Error())); werr != nil {
			_ = werr
		}
	}
}

// Submit: POST /sales – the commission field is recomputed server-side on
// both insert and update; whatever the form posted for it is ignored.
func (h *SaleHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	draft := services.SaleDraft{
		ClientID:             formClientID(r),
		ProductService:       strings.TrimSpace(r.FormValue("product_service")),
		Value:                formFloat(r, "value"),
		CommissionPercentage: formFloat(r, "commission_percentage"),
		SaleDate:             r.FormValue("sale_date"),
	}
	v := validation.Violations{}
	validation.Required("product_service", draft.ProductService, v)
	validation.PositiveFloat("value", draft.Value, v)
	validation.RangeFloat("commission_percentage", draft.CommissionPercentage, 0, 100, v)
	validation.ISODate("sale_date", draft.SaleDate, v)
	if !v.Empty() {
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/sales", http.StatusSeeOther)
		return
	}
	if err := h.Svc.Submit(sc, formUint(r, "id"), draft); err != nil {
		log.Printf("erro ao salvar venda: %v", err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "save_failed", err.Error())
			return
		}
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/sales", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]string{"status": "ok"})
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/sales", http.StatusSeeOther)
}

// Delete: POST /sales/delete?id=...
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id := queryID(r)
	if id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(sc, id); err != nil {
		log.Printf("erro ao excluir venda %d: %v", id, err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
			return
		}
		middleware.Flash(w, r, "delete_failed")
		http.Redirect(w, r, "/sales", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
		return
	}
	http.Redirect(w, r, "/sales", http.StatusSeeOther)
}

// ReportPDF: GET /sales/report.pdf – downloads the commission report.
func (h *SaleHandler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	sales, err := h.Svc.Load(sc)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_sales", nil)
		return
	}
	var user models.User
	owner := ""
	if err := h.DB.First(&user, sc.UserID()).Error; err == nil {
		owner = user.Name
	}
	data, genErr := pdfgen.SalesReport(owner, sales)
	if genErr != nil {
		log.Printf("erro ao gerar relatório de vendas: %v", genErr)
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"vendas-"+strconv.Itoa(int(sc.UserID()))+".pdf\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
