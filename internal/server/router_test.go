package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkaczor/serwisapp/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(conn)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var decoded map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode %s %s: %v (body=%s)", method, path, err, w.Body.String())
		}
	}
	return w, decoded
}

func TestHealthEndpoints(t *testing.T) {
	h := setupRouter(t)
	w, body := doJSON(t, h, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: %d %v", w.Code, body)
	}
	w, body = doJSON(t, h, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("healthz: %d %v", w.Code, body)
	}
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	h := setupRouter(t)

	w, client := doJSON(t, h, http.MethodPost, "/clients", `{"name":"Jan Nowak","phone":"600100200"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client: %d %v", w.Code, client)
	}
	clientID := client["id"].(string)

	orderBody := fmt.Sprintf(`{"clientId":%q,"title":"Remont łazienki","startDate":"2025-04-01T08:00:00Z","value":1000}`, clientID)
	w, order := doJSON(t, h, http.MethodPost, "/orders", orderBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: %d %v", w.Code, order)
	}
	orderID := order["id"].(string)
	if !strings.HasPrefix(order["orderNumber"].(string), "ZL/") {
		t.Errorf("orderNumber = %v", order["orderNumber"])
	}

	w, _ = doJSON(t, h, http.MethodPost, "/costs/materials?order_id="+orderID,
		`{"name":"Płytki","quantity":2,"unit":"m2","unitPrice":50,"vatRate":23}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add material: %d", w.Code)
	}
	w, _ = doJSON(t, h, http.MethodPost, "/costs/labor?order_id="+orderID,
		`{"description":"Montaż","hours":10,"ratePerHour":10}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add labor: %d", w.Code)
	}

	w, summary := doJSON(t, h, http.MethodGet, "/orders/summary?id="+orderID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("summary: %d %v", w.Code, summary)
	}
	fin := summary["financials"].(map[string]any)
	if fin["totalMaterials"].(float64) != 123 {
		t.Errorf("totalMaterials = %v, want 123", fin["totalMaterials"])
	}
	if fin["totalLabor"].(float64) != 100 {
		t.Errorf("totalLabor = %v, want 100", fin["totalLabor"])
	}
	if fin["totalCosts"].(float64) != 223 {
		t.Errorf("totalCosts = %v, want 223", fin["totalCosts"])
	}
}

func TestQuoteValidationOverHTTP(t *testing.T) {
	h := setupRouter(t)

	// empty item list must be rejected before anything is written
	w, body := doJSON(t, h, http.MethodPost, "/quotes", `{"clientId":"c1","items":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", w.Code, body)
	}
	if body["error"] != "validation_failed" {
		t.Errorf("error = %v", body["error"])
	}
	w, list := doJSON(t, h, http.MethodGet, "/quotes", "")
	if w.Code != http.StatusOK || list["total"].(float64) != 0 {
		t.Errorf("quotes persisted despite validation failure: %v", list)
	}
}

func TestQuoteCreateAndStatusOverHTTP(t *testing.T) {
	h := setupRouter(t)

	_, client := doJSON(t, h, http.MethodPost, "/clients", `{"name":"Jan Nowak","phone":"600100200"}`)
	clientID := client["id"].(string)

	quoteBody := fmt.Sprintf(`{"clientId":%q,"items":[{"name":"Glazura","quantity":1,"unitPrice":100,"vatRate":23}]}`, clientID)
	w, quote := doJSON(t, h, http.MethodPost, "/quotes", quoteBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("create quote: %d %v", w.Code, quote)
	}
	if quote["subtotal"].(float64) != 100 || quote["vatTotal"].(float64) != 23 || quote["total"].(float64) != 123 {
		t.Errorf("rollup = %v/%v/%v", quote["subtotal"], quote["vatTotal"], quote["total"])
	}
	if !strings.HasPrefix(quote["quoteNumber"].(string), "KS/") {
		t.Errorf("quoteNumber = %v", quote["quoteNumber"])
	}

	quoteID := quote["id"].(string)
	w, _ = doJSON(t, h, http.MethodPost, "/quotes/status?id="+quoteID, `{"status":"wyslane"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status update: %d", w.Code)
	}
	w, body := doJSON(t, h, http.MethodPost, "/quotes/status?id="+quoteID, `{"status":"nieznany"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown status should 400, got %d (%v)", w.Code, body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := setupRouter(t)
	w, _ := doJSON(t, h, http.MethodDelete, "/clients", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	h := setupRouter(t)

	_, client := doJSON(t, h, http.MethodPost, "/clients", `{"name":"Jan Nowak","phone":"600100200"}`)
	clientID := client["id"].(string)
	doJSON(t, h, http.MethodPost, "/orders",
		fmt.Sprintf(`{"clientId":%q,"title":"Remont","startDate":"2025-04-01T08:00:00Z"}`, clientID))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d", w.Code)
	}
	exported := w.Body.String()

	w2, _ := doJSON(t, h, http.MethodPost, "/import", exported)
	if w2.Code != http.StatusOK {
		t.Fatalf("import: %d %s", w2.Code, w2.Body.String())
	}
	_, clients := doJSON(t, h, http.MethodGet, "/clients", "")
	if clients["total"].(float64) != 1 {
		t.Errorf("clients after import = %v, want 1", clients["total"])
	}
	_, orders := doJSON(t, h, http.MethodGet, "/orders", "")
	if orders["total"].(float64) != 1 {
		t.Errorf("orders after import = %v, want 1", orders["total"])
	}
}
