package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/database"
	"github.com/aristath/valuator/internal/database/repositories"
	"github.com/aristath/valuator/internal/modules/companies"
	"github.com/aristath/valuator/internal/modules/report"
)

const testCompanyJSON = `{
	"ticker": "ACME",
	"companyName": "Acme Corp",
	"sector": "Technology",
	"marketData": {"currentPrice": 100, "sharesOutstanding": 1000000, "beta": 1.1},
	"financialHistory": {
		"2021": {"revenue": 80000000, "netIncome": 8000000, "totalAssets": 90000000, "shareholdersEquity": 35000000, "freeCashFlow": 7000000, "operatingCashFlow": 10000000},
		"2022": {"revenue": 90000000, "netIncome": 9000000, "totalAssets": 100000000, "shareholdersEquity": 40000000, "freeCashFlow": 8000000, "operatingCashFlow": 11000000},
		"2023": {"revenue": 100000000, "netIncome": 10000000, "totalAssets": 110000000, "shareholdersEquity": 45000000, "freeCashFlow": 9000000, "operatingCashFlow": 12000000, "operatingIncome": 13000000, "totalDebt": 20000000, "cashAndEquivalents": 5000000, "totalLiabilities": 65000000, "currentAssets": 30000000, "currentLiabilities": 15000000}
	}
}`

func testServer(t *testing.T) *Server {
	t.Helper()

	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "ACME.json"), []byte(testCompanyJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	log := zerolog.Nop()
	return New(Config{
		Port:       0,
		Log:        log,
		Loader:     companies.NewLoader(dataDir, log),
		Reports:    report.NewService(config.DefaultHeuristics(), log),
		Valuations: repositories.NewValuationRepository(db.Conn(), log),
		DevMode:    true,
	})
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestRunValuationEndpoint(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/valuation", `{"ticker": "acme", "save": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result["ticker"] != "ACME" {
		t.Errorf("ticker = %v, want ACME", result["ticker"])
	}
	if _, ok := result["intrinsicValue"].(float64); !ok {
		t.Error("response missing numeric intrinsicValue")
	}
	if _, ok := result["valuationBreakdown"]; !ok {
		t.Error("response missing valuationBreakdown")
	}

	// the saved run is now retrievable
	rec = doRequest(t, s, http.MethodGet, "/api/valuation/ACME", "")
	if rec.Code != http.StatusOK {
		t.Errorf("GET after save: status = %d, want 200", rec.Code)
	}
}

func TestRunValuationValidation(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing ticker", `{}`, http.StatusBadRequest},
		{"invalid json", `{`, http.StatusBadRequest},
		{"unknown company", `{"ticker": "NOPE"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/valuation", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestGetValuationNotFound(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/valuation/ACME", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before any run is saved", rec.Code)
	}
}

func TestValuationHistoryEndpoint(t *testing.T) {
	s := testServer(t)

	for i := 0; i < 2; i++ {
		if rec := doRequest(t, s, http.MethodPost, "/api/valuation", `{"ticker": "ACME", "save": true}`); rec.Code != http.StatusOK {
			t.Fatalf("seeding run %d failed: %d", i, rec.Code)
		}
	}

	rec := doRequest(t, s, http.MethodGet, "/api/valuation/ACME/history?limit=1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload struct {
		Ticker  string                          `json:"ticker"`
		History []repositories.ValuationSummary `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(payload.History) != 1 {
		t.Errorf("history rows = %d, want 1 with limit=1", len(payload.History))
	}

	rec = doRequest(t, s, http.MethodGet, "/api/valuation/ACME/history?limit=bogus", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bogus limit: status = %d, want 400", rec.Code)
	}
}

func TestListCompaniesEndpoint(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/companies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload struct {
		Count     int      `json:"count"`
		Companies []string `json:"companies"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if payload.Count != 1 || payload.Companies[0] != "ACME" {
		t.Errorf("companies = %v, want [ACME]", payload.Companies)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("body = %s, want healthy status", rec.Body.String())
	}
}

func TestSystemHealthEndpoint(t *testing.T) {
	s := testServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/system/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var health SystemHealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if health.Status != "running" {
		t.Errorf("status = %q, want running", health.Status)
	}
	if health.Goroutines < 1 {
		t.Errorf("goroutines = %d, want >= 1", health.Goroutines)
	}
	if health.Companies != 1 {
		t.Errorf("companies = %d, want 1", health.Companies)
	}
}
