package handlers

import (
	"log"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/gateway"
	"github.com/paulinho121/organizador/internal/httpx"
	"github.com/paulinho121/organizador/internal/middleware"
	"github.com/paulinho121/organizador/internal/models"
	"github.com/paulinho121/organizador/internal/services"
	"github.com/paulinho121/organizador/internal/validation"
	"github.com/paulinho121/organizador/internal/view"
)

type QuoteHandler struct {
	DB      *gorm.DB
	Svc     *services.QuoteService
	Clients *services.ClientService
}

func NewQuoteHandler(db *gorm.DB) *QuoteHandler {
	return &QuoteHandler{DB: db, Svc: services.NewQuoteService(db), Clients: services.NewClientService(db)}
}

// List: GET /quotes
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	quotes, err := h.Svc.Load(sc)
	if err != nil {
		quotes = nil
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	filtered := services.FilterQuotes(quotes, q)
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": filtered, "total": len(filtered)})
		return
	}
	clients, _ := h.Clients.Names(sc)
	data := map[string]any{"Quotes": filtered, "Clients": clients, "Query": q, "EditingClientID": uint(0)}
	if flash, ok := middleware.PopFlash(w, r); ok {
		data["Flash"] = flash
	}
	if editID := queryID(r); editID != 0 {
		var quote models.Quote
		if err := gateway.First(sc, editID, &quote); err == nil {
			data["Editing"] = quote
			if quote.ClientID != nil {
				data["EditingClientID"] = *quote.ClientID
			}
		}
	}
	if err := view.Render(w, r, "quotes.html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template render error: " + err.Error())); werr != nil {
			_ = werr
		}
	}
}

// Submit: POST /quotes
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	draft := services.QuoteDraft{
		ClientID:             formClientID(r),
		ProductService:       strings.TrimSpace(r.FormValue("product_service")),
		Value:                formFloat(r, "value"),
		CommissionPercentage: formFloat(r, "commission_percentage"),
		QuoteDate:            r.FormValue("quote_date"),
		Status:               r.FormValue("status"),
	}
	v := validation.Violations{}
	validation.Required("product_service", draft.ProductService, v)
	validation.PositiveFloat("value", draft.Value, v)
	validation.ISODate("quote_date", draft.QuoteDate, v)
	if !v.Empty() {
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/quotes", http.StatusSeeOther)
		return
	}
	if err := h.Svc.Submit(sc, formUint(r, "id"), draft); err != nil {
		log.Printf("erro ao salvar orçamento: %v", err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "save_failed", err.Error())
			return
		}
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/quotes", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]string{"status": "ok"})
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/quotes", http.StatusSeeOther)
}

// Convert: POST /quotes/convert?id=... – two ordered steps, no rollback; the
// template's confirm() gates the request.
func (h *QuoteHandler) Convert(w http.ResponseWriter, r *http.Request) {
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
	sale, err := h.Svc.ConvertToSale(sc, id)
	if err != nil {
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "convert_failed", err.Error())
			return
		}
		middleware.Flash(w, r, "convert_failed")
		http.Redirect(w, r, "/quotes", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"sale_id": sale.ID, "status": models.QuoteStatusAccepted})
		return
	}
	middleware.Flash(w, r, "convert_ok")
	http.Redirect(w, r, "/quotes", http.StatusSeeOther)
}

// Delete: POST /quotes/delete?id=...
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("erro ao excluir orçamento %d: %v", id, err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
			return
		}
		middleware.Flash(w, r, "delete_failed")
		http.Redirect(w, r, "/quotes", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
		return
	}
	http.Redirect(w, r, "/quotes", http.StatusSeeOther)
}
