package handlers

import (
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/gateway"
	"github.com/paulinho121/organizador/internal/httpx"
	"github.com/paulinho121/organizador/internal/middleware"
	"github.com/paulinho121/organizador/internal/models"
	"github.com/paulinho121/organizador/internal/services"
	"github.com/paulinho121/organizador/internal/validation"
	"github.com/paulinho121/organizador/internal/view"
)

type MeetingHandler struct {
	DB      *gorm.DB
	Svc     *services.MeetingService
	Clients *services.ClientService
}

func NewMeetingHandler(db *gorm.DB) *MeetingHandler {
	return &MeetingHandler{DB: db, Svc: services.NewMeetingService(db), Clients: services.NewClientService(db)}
}

// List: GET /meetings – HTML page or JSON items. ?edit=ID pre-fills the form
// with that record's fields (empty strings for absent optionals).
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	meetings, err := h.Svc.Load(sc)
	if err != nil {
		// load failures are non-blocking: empty list, logged upstream
		meetings = nil
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": meetings, "total": len(meetings)})
		return
	}
	clients, _ := h.Clients.Names(sc)
	data := map[string]any{"Meetings": meetings, "Clients": clients, "EditingClientID": uint(0)}
	if flash, ok := middleware.PopFlash(w, r); ok {
		data["Flash"] = flash
	}
	if editID := queryID(r); editID != 0 {
		var m models.Meeting
		if err := gateway.First(sc, editID, &m); err == nil {
			data["Editing"] = m
			if m.ClientID != nil {
				data["EditingClientID"] = *m.ClientID
			}
		}
	}
	if err := view.Render(w, r, "meetings.html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template render error: " + err.Error())); werr != nil {
			_ = werr
		}
	}
}

// Submit: POST /meetings – insert, or full overwrite when the hidden id field
// is set.
func (h *MeetingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sc, ok := scopeFrom(r, h.DB)
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	draft := services.MeetingDraft{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Pauta:       r.FormValue("pauta"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		ClientID:    formClientID(r),
	}
	v := validation.Violations{}
	validation.Required("title", draft.Title, v)
	validation.ISODate("date", draft.Date, v)
	validation.Required("time", draft.Time, v)
	if !v.Empty() {
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/meetings", http.StatusSeeOther)
		return
	}
	if err := h.Svc.Submit(sc, formUint(r, "id"), draft); err != nil {
		log.Printf("erro ao salvar reunião: %v", err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "save_failed", err.Error())
			return
		}
		middleware.Flash(w, r, "save_failed")
		http.Redirect(w, r, "/meetings", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]string{"status": "ok"})
		return
	}
	middleware.Flash(w, r, "saved")
	http.Redirect(w, r, "/meetings", http.StatusSeeOther)
}

// Delete: POST /meetings/delete?id=... The browser confirm() gate lives in
// the template; a declined confirm never reaches this handler.
func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("erro ao excluir reunião %d: %v", id, err)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
			return
		}
		middleware.Flash(w, r, "delete_failed")
		http.Redirect(w, r, "/meetings", http.StatusSeeOther)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
		return
	}
	http.Redirect(w, r, "/meetings", http.StatusSeeOther)
}
