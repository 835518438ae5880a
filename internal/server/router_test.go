package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/models"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	// Templates and static assets resolve relative to the project root.
	cwd, _ := os.Getwd()
	root := filepath.Clean(filepath.Join(cwd, "../.."))
	_ = os.Chdir(root)
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Client{}, &models.Meeting{}, &models.Sale{}, &models.Quote{}, &models.Reminder{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func TestHealthEndpoints(t *testing.T) {
	h := setupRouter(t)

	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s expected 200 got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"ok"`) {
			t.Fatalf("%s unexpected body %s", path, w.Body.String())
		}
	}
}

func TestProtectedRoutesRedirectWithoutSession(t *testing.T) {
	h := setupRouter(t)

	for _, path := range []string{"/dashboard", "/meetings", "/clients", "/sales", "/quotes", "/reminders"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
			t.Fatalf("%s expected redirect to /login got %d %s", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestSignupLoginDashboardFlow(t *testing.T) {
	h := setupRouter(t)

	// Signup creates the account and the session in one step.
	form := url.Values{"name": {"Paula"}, "email": {"paula@test"}, "password": {"segredo"}}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(w, r)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/dashboard" {
		t.Fatalf("signup expected redirect to /dashboard got %d %s", w.Code, w.Header().Get("Location"))
	}
	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	if session == nil {
		t.Fatalf("signup did not set a session cookie")
	}

	// The session opens the dashboard.
	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r2.AddCookie(session)
	h.ServeHTTP(w2, r2)
	if w2.Code != http.StatusOK {
		t.Fatalf("dashboard expected 200 got %d body=%s", w2.Code, w2.Body.String())
	}
	if !strings.Contains(w2.Body.String(), "Dashboard") {
		t.Fatalf("dashboard body missing heading")
	}

	// Login with the wrong password re-renders the form.
	w3 := httptest.NewRecorder()
	bad := url.Values{"email": {"paula@test"}, "password": {"errada"}}
	r3 := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(bad.Encode()))
	r3.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(w3, r3)
	if w3.Code != http.StatusOK || !strings.Contains(w3.Body.String(), "inválidos") {
		t.Fatalf("bad login expected inline error got %d", w3.Code)
	}

	// Login with the right password redirects to the dashboard.
	w4 := httptest.NewRecorder()
	good := url.Values{"email": {"paula@test"}, "password": {"segredo"}}
	r4 := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(good.Encode()))
	r4.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(w4, r4)
	if w4.Code != http.StatusSeeOther || w4.Header().Get("Location") != "/dashboard" {
		t.Fatalf("login expected redirect to /dashboard got %d", w4.Code)
	}

	// Logout clears the session; the dashboard denies again.
	w5 := httptest.NewRecorder()
	r5 := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r5.AddCookie(session)
	h.ServeHTTP(w5, r5)
	if w5.Code != http.StatusSeeOther || w5.Header().Get("Location") != "/login" {
		t.Fatalf("logout expected redirect to /login got %d", w5.Code)
	}
}

func TestLandingRedirectsAuthenticated(t *testing.T) {
	h := setupRouter(t)

	// Anonymous landing renders the public page.
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Organizador") {
		t.Fatalf("landing expected public page got %d", w.Code)
	}

	// Unknown path is a 404, not the landing page.
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w2.Code)
	}
}

func TestMethodNotAllowedOnEntityRoutes(t *testing.T) {
	h := setupRouter(t)

	// Signup a user to get past auth.
	form := url.Values{"email": {"m@test"}, "password": {"x"}}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(w, r)
	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	if session == nil {
		t.Fatalf("no session cookie")
	}

	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest(http.MethodPut, "/clients", nil)
	r2.AddCookie(session)
	h.ServeHTTP(w2, r2)
	if w2.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", w2.Code)
	}
	if w2.Header().Get("Allow") != "GET,POST" {
		t.Fatalf("expected Allow header got %q", w2.Header().Get("Allow"))
	}
}
