package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/paulinho121/organizador/internal/auth"
	"github.com/paulinho121/organizador/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Client{}, &models.Meeting{}, &models.Sale{}, &models.Quote{}, &models.Reminder{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	u := models.User{Email: email, Password: "hash"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// jsonForm builds an authenticated form POST that negotiates a JSON response.
func jsonForm(t *testing.T, target string, form url.Values, userID uint) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("Accept", "application/json")
	return r.WithContext(auth.WithUserID(r.Context(), userID))
}

func jsonGet(target string, userID uint) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.Header.Set("Accept", "application/json")
	return r.WithContext(auth.WithUserID(r.Context(), userID))
}

func TestClientSubmitAndListJSON(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u@test")
	h := NewClientHandler(db)

	form := url.Values{"name": {"Maria"}, "contact_info": {"11 99999-0000"}, "address": {"Rua A"}}
	w := httptest.NewRecorder()
	h.Submit(w, jsonForm(t, "/clients", form, user.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	w2 := httptest.NewRecorder()
	h.List(w2, jsonGet("/clients", user.ID))
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w2.Code)
	}
	var payload struct {
		Items []models.Client `json:"items"`
		Total int             `json:"total"`
	}
	if err := json.Unmarshal(w2.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Total != 1 || len(payload.Items) != 1 || payload.Items[0].Name != "Maria" {
		t.Fatalf("unexpected payload: %s", w2.Body.String())
	}
}

func TestClientSubmitValidationJSON(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u@test")
	h := NewClientHandler(db)

	w := httptest.NewRecorder()
	h.Submit(w, jsonForm(t, "/clients", url.Values{"name": {"   "}}, user.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "validation_failed") {
		t.Fatalf("expected validation_failed body=%s", w.Body.String())
	}
}

func TestClientListFilterJSON(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u@test")
	h := NewClientHandler(db)

	for _, n := range []string{"Maria Souza", "João Lima"} {
		w := httptest.NewRecorder()
		h.Submit(w, jsonForm(t, "/clients", url.Values{"name": {n}}, user.ID))
		if w.Code != http.StatusCreated {
			t.Fatalf("seed %s: %d", n, w.Code)
		}
	}
	w := httptest.NewRecorder()
	h.List(w, jsonGet("/clients?q=maria", user.ID))
	var payload struct {
		Items []models.Client `json:"items"`
		Total int             `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Total != 1 || payload.Items[0].Name != "Maria Souza" {
		t.Fatalf("filter failed: %s", w.Body.String())
	}
}

func TestSaleSubmitIgnoresPostedCommission(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u@test")
	h := NewSaleHandler(db)

	form := url.Values{
		"product_service":       {"Consultoria"},
		"value":                 {"1000"},
		"commission_percentage": {"10"},
		"commission_value":      {"999999"}, // must be ignored
		"sale_date":             {"2026-08-01"},
	}
	w := httptest.NewRecorder()
	h.Submit(w, jsonForm(t, "/sales", form, user.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var sale models.Sale
	if err := db.First(&sale).Error; err != nil {
		t.Fatalf("load sale: %v", err)
	}
	if sale.CommissionValue != 100 {
		t.Fatalf("expected derived commission 100 got %v", sale.CommissionValue)
	}
}

func TestSaleSubmitRejectsBadDate(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u@test")
	h := NewSaleHandler(db)

	form := url.Values{"product_service": {"X"}, "value": {"10"}, "sale_date": {"01/08/2026"}}
	w := httptest.NewRecorder()
	h.Submit(w, jsonForm(t, "/sales", form, user.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestQuoteConvertJSON(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u@test")
	h := NewQuoteHandler(db)

	form := url.Values{
		"product_service":       {"Projeto"},
		"value":                 {"1000"},
		"commission_percentage": {"10"},
		"quote_date":            {"2026-08-01"},
	}
	w := httptest.NewRecorder()
	h.Submit(w, jsonForm(t, "/quotes", form, user.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("seed quote: %d body=%s", w.Code, w.Body.String())
	}
	var quote models.Quote
	if err := db.First(&quote).Error; err != nil {
		t.Fatalf("load quote: %v", err)
	}

	w2 := httptest.NewRecorder()
	r2 := jsonForm(t, "/quotes/convert?id="+strconv.Itoa(int(quote.ID)), url.Values{}, user.ID)
	h.Convert(w2, r2)
	if w2.Code != http.StatusOK {
		t.Fatalf("convert: %d body=%s", w2.Code, w2.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w2.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != models.QuoteStatusAccepted {
		t.Fatalf("expected aceito got %v", resp["status"])
	}
	var sale models.Sale
	if err := db.First(&sale).Error; err != nil {
		t.Fatalf("expected sale row: %v", err)
	}
	if sale.CommissionValue != 100 {
		t.Fatalf("expected commission 100 got %v", sale.CommissionValue)
	}
}

func TestQuoteConvertMissingIDJSON(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u@test")
	h := NewQuoteHandler(db)

	w := httptest.NewRecorder()
	h.Convert(w, jsonForm(t, "/quotes/convert", url.Values{}, user.ID))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestReminderToggleJSON(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u@test")
	h := NewReminderHandler(db)

	w := httptest.NewRecorder()
	h.Submit(w, jsonForm(t, "/reminders", url.Values{"title": {"Pagar boleto"}}, user.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("seed reminder: %d", w.Code)
	}
	var rem models.Reminder
	if err := db.First(&rem).Error; err != nil {
		t.Fatalf("load reminder: %v", err)
	}

	w2 := httptest.NewRecorder()
	h.Toggle(w2, jsonForm(t, "/reminders/toggle?id="+strconv.Itoa(int(rem.ID))+"&completed=false", url.Values{}, user.ID))
	if w2.Code != http.StatusOK {
		t.Fatalf("toggle: %d body=%s", w2.Code, w2.Body.String())
	}
	if err := db.First(&rem, rem.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !rem.IsCompleted {
		t.Fatalf("expected completed after toggle")
	}
}

func TestDeleteScopedJSON(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "dona@test")
	other := seedUser(t, db, "outra@test")
	h := NewClientHandler(db)

	w := httptest.NewRecorder()
	h.Submit(w, jsonForm(t, "/clients", url.Values{"name": {"Protegida"}}, owner.ID))
	var c models.Client
	if err := db.First(&c).Error; err != nil {
		t.Fatalf("load client: %v", err)
	}

	// Foreign user cannot delete.
	w2 := httptest.NewRecorder()
	h.Delete(w2, jsonForm(t, "/clients/delete?id="+strconv.Itoa(int(c.ID)), url.Values{}, other.ID))
	if w2.Code != http.StatusInternalServerError {
		t.Fatalf("expected delete_failed for foreign scope got %d", w2.Code)
	}

	w3 := httptest.NewRecorder()
	h.Delete(w3, jsonForm(t, "/clients/delete?id="+strconv.Itoa(int(c.ID)), url.Values{}, owner.ID))
	if w3.Code != http.StatusOK {
		t.Fatalf("owner delete: %d", w3.Code)
	}
}

func TestHandlersRejectMissingSession(t *testing.T) {
	db := setupTestDB(t)
	h := NewClientHandler(db)

	r := httptest.NewRequest(http.MethodGet, "/clients", nil)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.List(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestDashboardShowJSON(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u@test")

	sales := NewSaleHandler(db)
	w := httptest.NewRecorder()
	sales.Submit(w, jsonForm(t, "/sales", url.Values{
		"product_service":       {"A"},
		"value":                 {"300"},
		"commission_percentage": {"10"},
		"sale_date":             {"2026-08-01"},
	}, user.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("seed sale: %d", w.Code)
	}

	dash := NewDashboardHandler(db)
	w2 := httptest.NewRecorder()
	dash.Show(w2, jsonGet("/dashboard", user.ID))
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w2.Code)
	}
	var stats map[string]any
	if err := json.Unmarshal(w2.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats["totalSalesValue"].(float64) != 300 || stats["totalCommission"].(float64) != 30 {
		t.Fatalf("unexpected stats: %s", w2.Body.String())
	}
}

func TestSalesReportPDF(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "u@test")
	h := NewSaleHandler(db)

	w := httptest.NewRecorder()
	h.Submit(w, jsonForm(t, "/sales", url.Values{
		"product_service":       {"Consultoria"},
		"value":                 {"1000"},
		"commission_percentage": {"10"},
		"sale_date":             {"2026-08-01"},
	}, user.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("seed sale: %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	h.ReportPDF(w2, jsonGet("/sales/report.pdf", user.ID))
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w2.Code, w2.Body.String())
	}
	if ct := w2.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("expected pdf content type got %s", ct)
	}
	if !strings.HasPrefix(w2.Body.String(), "%PDF") {
		t.Fatalf("body is not a PDF")
	}
}
