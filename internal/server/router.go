package server

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/auth"
	"github.com/paulinho121/organizador/internal/handlers"
	"github.com/paulinho121/organizador/internal/httpx"
	"github.com/paulinho121/organizador/internal/middleware"
	"github.com/paulinho121/organizador/internal/models"
	"github.com/paulinho121/organizador/internal/view"
)

// protected wires the session middlewares around an entity route.
func protected(h http.HandlerFunc) http.Handler {
	return auth.Middleware(auth.RequireAuth(h))
}

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth checks the session's user still exists.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, werr := w.Write([]byte(`{"status":"degraded"}`)); werr != nil {
				_ = werr
			}
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth pages
	handlers.NewAuthHandler(db).Register(mux)

	// Dashboard
	dash := handlers.NewDashboardHandler(db)
	mux.Handle("/dashboard", protected(dash.Show))

	// Meetings
	mh := handlers.NewMeetingHandler(db)
	mux.Handle("/meetings", protected(listOrSubmit(mh.List, mh.Submit)))
	mux.Handle("/meetings/delete", protected(mh.Delete))

	// Clients
	ch := handlers.NewClientHandler(db)
	mux.Handle("/clients", protected(listOrSubmit(ch.List, ch.Submit)))
	mux.Handle("/clients/delete", protected(ch.Delete))

	// Sales
	sh := handlers.NewSaleHandler(db)
	mux.Handle("/sales", protected(listOrSubmit(sh.List, sh.Submit)))
	mux.Handle("/sales/delete", protected(sh.Delete))
	mux.Handle("/sales/report.pdf", protected(sh.ReportPDF))

	// Quotes
	qh := handlers.NewQuoteHandler(db)
	mux.Handle("/quotes", protected(listOrSubmit(qh.List, qh.Submit)))
	mux.Handle("/quotes/convert", protected(qh.Convert))
	mux.Handle("/quotes/delete", protected(qh.Delete))

	// Reminders
	rh := handlers.NewReminderHandler(db)
	mux.Handle("/reminders", protected(listOrSubmit(rh.List, rh.Submit)))
	mux.Handle("/reminders/toggle", protected(rh.Toggle))
	mux.Handle("/reminders/delete", protected(rh.Delete))

	// Static assets
	mux.Handle("/static/", staticHandler())

	// Landing: authenticated users go to the dashboard, everyone else to login.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if uid, ok := auth.ParseSession(r); ok && uid != 0 {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		if err := view.Render(w, r, "index.html", nil); err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		}
	})

	return middleware.Prefs(withRecover(withLogging(mux)))
}

// listOrSubmit routes GET to the list view and POST to the form submit.
func listOrSubmit(list, submit http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(w, r)
		case http.MethodPost:
			submit(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	}
}

func staticHandler() http.Handler {
	fs := http.FileServer(http.Dir("static"))
	return http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch filepath.Ext(r.URL.Path) {
		case ".css":
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		case ".js":
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fs.ServeHTTP(w, r)
	}))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s: %v", r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
