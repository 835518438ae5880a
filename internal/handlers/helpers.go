package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/auth"
	"github.com/paulinho121/organizador/internal/gateway"
)

// scopeFrom builds the per-request user scope. Every list controller receives
// its scope here instead of reading ambient session state.
func scopeFrom(r *http.Request, db *gorm.DB) (gateway.Scope, bool) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok || uid == 0 {
		return gateway.Scope{}, false
	}
	return gateway.NewScope(db, uid), true
}

func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func formUint(r *http.Request, name string) uint {
	n, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(name)))
	if n < 0 {
		return 0
	}
	return uint(n)
}

func formFloat(r *http.Request, name string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(r.FormValue(name)), 64)
	return f
}

// formClientID reads the optional client select; the empty option maps to nil.
func formClientID(r *http.Request) *uint {
	v := strings.TrimSpace(r.FormValue("client_id"))
	if v == "" || v == "0" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return nil
	}
	id := uint(n)
	return &id
}

// queryID reads an id from the query string, falling back to the form body.
func queryID(r *http.Request) uint {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		idStr = r.FormValue("id")
	}
	n, _ := strconv.Atoi(idStr)
	if n <= 0 {
		return 0
	}
	return uint(n)
}
