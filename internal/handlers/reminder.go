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

type ReminderHandler struct {
	DB  *gorm.DB
	Svc *services.ReminderService
}

func NewReminderHandler(db *gorm.DB) *ReminderHandler {
	return &ReminderHandler{DB: db, Svc: services.NewReminderService(db)}
}

// List: GET /reminders – partitioned into pending and completed.
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	reminders, err := h.Svc.Load(sc)
	if err != nil {
		reminders = nil
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": reminders, "total": len(reminders)})
		return
	}
	pending, completed := services.PartitionReminders(reminders)
	data := map[string]any{"Pending": pending, "Completed": completed}
	if flash, ok := middleware.PopFlash(w, r); ok {
		data["Flash"] = flash
	}
	if editID := queryID(r); editID != 0 {
		var rem models.Reminder
		if err := gateway.First(sc, editID, &rem); err == nil {
			data["Editing"] = rem
		}
	}
	if err := view.Render(w, r, "reminders.html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template render error: " + err.Error())); werr != nil {
			_ = werr
		}
	}
}

// Submit: POST /reminders – new rows always start not-completed.
func (h *ReminderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	draft := services.ReminderDraft{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: r.FormValue("description"),
		DueDate:     r.FormValue("due_date"),
	}
	v := validation.Violations{}
	validation.Required("title", draft.Title, v)
	if draft.DueDate != "" {
		validation.ISODate("due_date", draft.DueDate, v)
	}
	if !v.Empty() {
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/reminders", http.StatusSeeOther)
		return
	}
	if err := h.Svc.Submit(sc, formUint(r, "id"), draft); err != nil {
		log.Printf("erro ao salvar lembrete: %v", err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "save_failed", err.Error())
			return
		}
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/reminders", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]string{"status": "ok"})
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/reminders", http.StatusSeeOther)
}

// Toggle: POST /reminders/toggle?id=...&completed=true|false – writes the
// negation of the posted current state.
func (h *ReminderHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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
	current := r.FormValue("completed") == "true" || r.URL.Query().Get("completed") == "true"
	if err := h.Svc.ToggleComplete(sc, id, current); err != nil {
		log.Printf("erro ao atualizar lembrete %d: %v", id, err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "toggle_failed", nil)
			return
		}
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/reminders", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "is_completed": !current})
		return
	}
	http.Redirect(w, r, "/reminders", http.StatusSeeOther)
}

// Delete: POST /reminders/delete?id=...
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("erro ao excluir lembrete %d: %v", id, err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
			return
		}
		middleware.Flash(w, r, "delete_failed")
		http.Redirect(w, r, "/reminders", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
		return
	}
	http.Redirect(w, r, "/reminders", http.StatusSeeOther)
}
