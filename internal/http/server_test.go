package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/log"
	"folio/internal/portfolio"
	"folio/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "folio.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	svc := portfolio.NewService(repo, nil, log.New(log.DefaultConfig()))
	t.Cleanup(func() { svc.Close() })
	return NewServer(":0", svc, log.New(log.DefaultConfig()))
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func assetForm(ticker string) url.Values {
	return url.Values{
		"ticker":        {ticker},
		"purchase_date": {"2024-01-15"},
		"shares":        {"10"},
		"cost_basis":    {"1500.00"},
		"class":         {"Equities"},
	}
}

func TestPagesRender(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/assets", "/transactions", "/insights"} {
		rr := get(t, srv, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}

	if rr := get(t, srv, "/nonexistent"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown path, got %d", rr.Code)
	}
}

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := get(t, srv, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}

	rr := get(t, srv, "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "http_requests_total") {
		t.Fatalf("metrics body missing counters: %s", rr.Body.String())
	}
}

func TestCreateAssetValidationAndSuccess(t *testing.T) {
	srv := newTestServer(t)

	// Missing ticker
	form := assetForm("")
	if rr := postForm(t, srv, "/assets", form); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty ticker, got %d", rr.Code)
	}

	// Non-numeric shares
	form = assetForm("AAPL")
	form.Set("shares", "abc")
	if rr := postForm(t, srv, "/assets", form); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for bad shares, got %d", rr.Code)
	}

	// Negative cost basis
	form = assetForm("AAPL")
	form.Set("cost_basis", "-5")
	if rr := postForm(t, srv, "/assets", form); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for negative cost basis, got %d", rr.Code)
	}

	// Unknown class
	form = assetForm("AAPL")
	form.Set("class", "Collectibles")
	if rr := postForm(t, srv, "/assets", form); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown class, got %d", rr.Code)
	}

	// Success
	rr := postForm(t, srv, "/assets", assetForm("AAPL"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "asset:created") {
		t.Fatalf("expected asset:created trigger, got %q", rr.Header().Get("HX-Trigger"))
	}

	// Duplicate
	if rr := postForm(t, srv, "/assets", assetForm("AAPL")); rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate ticker, got %d", rr.Code)
	}
}

func TestUpdateAndDeleteAsset(t *testing.T) {
	srv := newTestServer(t)

	if rr := get(t, srv, "/assets/update"); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	if rr := postForm(t, srv, "/assets", assetForm("AAPL")); rr.Code != http.StatusOK {
		t.Fatalf("create failed: %d", rr.Code)
	}

	// Rename AAPL to VTI
	form := assetForm("VTI")
	form.Set("original_ticker", "AAPL")
	rr := postForm(t, srv, "/assets/update", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for update, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "asset:updated") {
		t.Fatalf("expected asset:updated trigger")
	}

	// Updating the old name now misses
	form = assetForm("AAPL")
	form.Set("original_ticker", "AAPL")
	if rr := postForm(t, srv, "/assets/update", form); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing asset, got %d", rr.Code)
	}

	// Delete
	rr = postForm(t, srv, "/assets/delete", url.Values{"ticker": {"VTI"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for delete, got %d", rr.Code)
	}
	if rr := postForm(t, srv, "/assets/delete", url.Values{"ticker": {"VTI"}}); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for double delete, got %d", rr.Code)
	}
}

func TestLogTransaction(t *testing.T) {
	srv := newTestServer(t)

	// Ticker must exist
	form := url.Values{"ticker": {"AAPL"}, "type": {"Buy"}, "amount": {"100.00"}}
	if rr := postForm(t, srv, "/transactions", form); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown ticker, got %d", rr.Code)
	}

	if rr := postForm(t, srv, "/assets", assetForm("AAPL")); rr.Code != http.StatusOK {
		t.Fatalf("create failed: %d", rr.Code)
	}

	// Zero amount
	form.Set("amount", "0")
	if rr := postForm(t, srv, "/transactions", form); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for zero amount, got %d", rr.Code)
	}

	// Unknown type
	form.Set("amount", "100.00")
	form.Set("type", "Short")
	if rr := postForm(t, srv, "/transactions", form); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown type, got %d", rr.Code)
	}

	// Success
	form.Set("type", "Buy")
	rr := postForm(t, srv, "/transactions", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "transaction:logged") {
		t.Fatalf("expected transaction:logged trigger")
	}

	// History shows the new row
	rr = get(t, srv, "/ui/transaction-table")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "AAPL") {
		t.Fatalf("transaction table missing row: %d %s", rr.Code, rr.Body.String())
	}
}

func TestPartialsEmptyStates(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		path string
		want string
	}{
		{"/ui/summary", "empty"},
		{"/ui/asset-table", "No assets yet"},
		{"/ui/transaction-table", "No transactions recorded yet"},
		{"/ui/insights", "No data yet"},
		{"/ui/asset-form", "Select an asset"},
	}
	for _, tc := range cases {
		rr := get(t, srv, tc.path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", tc.path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), tc.want) {
			t.Fatalf("%s missing empty state %q: %s", tc.path, tc.want, rr.Body.String())
		}
	}
}

func TestAllocationData(t *testing.T) {
	srv := newTestServer(t)

	var payload struct {
		Labels []string  `json:"labels"`
		Values []float64 `json:"values"`
	}

	rr := get(t, srv, "/api/allocation")
	if rr.Code != http.StatusOK {
		t.Fatalf("allocation status=%d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Labels) != 0 {
		t.Fatalf("expected empty allocation, got %v", payload.Labels)
	}

	if rr := postForm(t, srv, "/assets", assetForm("AAPL")); rr.Code != http.StatusOK {
		t.Fatalf("create failed: %d", rr.Code)
	}

	rr = get(t, srv, "/api/allocation")
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Labels) != 1 || payload.Labels[0] != "Equities" {
		t.Fatalf("expected Equities allocation, got %v", payload.Labels)
	}
	if len(payload.Values) != 1 || payload.Values[0] != 1500.0 {
		t.Fatalf("expected 1500.0 value, got %v", payload.Values)
	}
}

func TestSummaryPartialAfterCreate(t *testing.T) {
	srv := newTestServer(t)

	if rr := postForm(t, srv, "/assets", assetForm("AAPL")); rr.Code != http.StatusOK {
		t.Fatalf("create failed: %d", rr.Code)
	}

	rr := get(t, srv, "/ui/summary")
	if rr.Code != http.StatusOK {
		t.Fatalf("summary status=%d", rr.Code)
	}
	body := rr.Body.String()
	// 10 shares at $1500 cost basis under the 1.10 stand-in price
	for _, want := range []string{"$16500.00", "+$15000.00", "$1500.00"} {
		if !strings.Contains(body, want) {
			t.Fatalf("summary missing %q: %s", want, body)
		}
	}
}
