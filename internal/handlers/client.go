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

type ClientHandler struct {
	DB  *gorm.DB
	Svc *services.ClientService
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{DB: db, Svc: services.NewClientService(db)}
}

// List: GET /clients – supports ?q= in-memory filtering and a grid/list view
// toggle (?view=list), both render-only.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	clients, err := h.Svc.Load(sc)
	if err != nil {
		clients = nil
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	filtered := services.FilterClients(clients, q)
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": filtered, "total": len(filtered)})
		return
	}
	viewMode := r.URL.Query().Get("view")
	if viewMode != "list" {
		viewMode = "grid"
	}
	data := map[string]any{"Clients": filtered, "Query": q, "ViewMode": viewMode}
	if flash, ok := middleware.PopFlash(w, r); ok {
		data["Flash"] = flash
	}
	if editID := queryID(r); editID != 0 {
		var c models.Client
		if err := gateway.First(sc, editID, &c); err == nil {
			data["Editing"] = c
		}
	}
	if err := view.Render(w, r, "clients.html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template render error: " + err.Error())); werr != nil {
			_ = werr
		}
	}
}

// Submit: POST /clients
func (h *ClientHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	draft := services.ClientDraft{
		Name:        strings.TrimSpace(r.FormValue("name")),
		ContactInfo: r.FormValue("contact_info"),
		Address:     r.FormValue("address"),
	}
	v := validation.Violations{}
	validation.Required("name", draft.Name, v)
	if !v.Empty() {
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
		return
	}
	if err := h.Svc.Submit(sc, formUint(r, "id"), draft); err != nil {
		log.Printf("erro ao salvar cliente: %v", err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "save_failed", err.Error())
			return
		}
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]string{"status": "ok"})
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}

// Delete: POST /clients/delete?id=...
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("erro ao excluir cliente %d: %v", id, err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
			return
		}
		middleware.Flash(w, r, "delete_failed")
		http.Redirect(w, r, "/clients", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
		return
	}
	http.Redirect(w, r, "/clients", http.StatusSeeOther)
}
