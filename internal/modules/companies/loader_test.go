package companies

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

const validCompanyJSON = `{
	"ticker": "ACME",
	"companyName": "Acme Corp",
	"sector": "Industrials",
	"marketData": {"currentPrice": 50, "sharesOutstanding": 1000000},
	"financialHistory": {
		"2022": {"revenue": 90000000, "netIncome": 9000000, "totalAssets": 100000000, "shareholdersEquity": 40000000, "freeCashFlow": 8000000},
		"2023": {"revenue": 100000000, "netIncome": 10000000, "totalAssets": 110000000, "shareholdersEquity": 45000000, "freeCashFlow": 9000000}
	}
}`

func writeCompanyFile(t *testing.T, dir, ticker, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ticker+".json"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}

func TestLoadValidCompany(t *testing.T) {
	dir := t.TempDir()
	writeCompanyFile(t, dir, "ACME", validCompanyJSON)

	facts, err := NewLoader(dir, zerolog.Nop()).Load("acme")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if facts.Ticker != "ACME" || facts.Sector != "Industrials" {
		t.Errorf("loaded (%s, %s), want (ACME, Industrials)", facts.Ticker, facts.Sector)
	}
	if got := facts.CurrentPrice(); got != 50 {
		t.Errorf("price = %v, want 50", got)
	}
}

func TestLoadMissingCompany(t *testing.T) {
	_, err := NewLoader(t.TempDir(), zerolog.Nop()).Load("NOPE")
	if !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("Load() error = %v, want ErrCompanyNotFound", err)
	}
}

func TestLoadRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"zero price", `{
			"ticker": "BAD", "companyName": "Bad Co",
			"marketData": {"currentPrice": 0, "sharesOutstanding": 1000000},
			"financialHistory": {
				"2022": {"revenue": 1, "netIncome": 1, "totalAssets": 1, "shareholdersEquity": 1, "freeCashFlow": 1},
				"2023": {"revenue": 1, "netIncome": 1, "totalAssets": 1, "shareholdersEquity": 1, "freeCashFlow": 1}
			}
		}`},
		{"single period", `{
			"ticker": "BAD", "companyName": "Bad Co",
			"marketData": {"currentPrice": 10, "sharesOutstanding": 1000000},
			"financialHistory": {
				"2023": {"revenue": 1, "netIncome": 1, "totalAssets": 1, "shareholdersEquity": 1, "freeCashFlow": 1}
			}
		}`},
		{"missing required field", `{
			"ticker": "BAD", "companyName": "Bad Co",
			"marketData": {"currentPrice": 10, "sharesOutstanding": 1000000},
			"financialHistory": {
				"2022": {"revenue": 1, "netIncome": 1, "totalAssets": 1, "shareholdersEquity": 1, "freeCashFlow": 1},
				"2023": {"revenue": 1, "netIncome": 1, "totalAssets": 1, "shareholdersEquity": 1}
			}
		}`},
		{"missing ticker", `{
			"companyName": "Bad Co",
			"marketData": {"currentPrice": 10, "sharesOutstanding": 1000000},
			"financialHistory": {
				"2022": {"revenue": 1, "netIncome": 1, "totalAssets": 1, "shareholdersEquity": 1, "freeCashFlow": 1},
				"2023": {"revenue": 1, "netIncome": 1, "totalAssets": 1, "shareholdersEquity": 1, "freeCashFlow": 1}
			}
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeCompanyFile(t, dir, "BAD", tt.json)

			if _, err := NewLoader(dir, zerolog.Nop()).Load("BAD"); err == nil {
				t.Error("Load() succeeded, want validation error")
			}
		})
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeCompanyFile(t, dir, "ZETA", validCompanyJSON)
	writeCompanyFile(t, dir, "ACME", validCompanyJSON)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0o644); err != nil {
		t.Fatal(err)
	}

	tickers, err := NewLoader(dir, zerolog.Nop()).List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tickers) != 2 || tickers[0] != "ACME" || tickers[1] != "ZETA" {
		t.Errorf("List() = %v, want [ACME ZETA]", tickers)
	}
}

func TestLoadAllSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	writeCompanyFile(t, dir, "ACME", validCompanyJSON)
	writeCompanyFile(t, dir, "BROKEN", `{not json`)

	companies, err := NewLoader(dir, zerolog.Nop()).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(companies) != 1 || companies[0].Ticker != "ACME" {
		t.Errorf("LoadAll() loaded %d companies, want just ACME", len(companies))
	}
}

func TestLoadConvertsCurrency(t *testing.T) {
	dir := t.TempDir()
	writeCompanyFile(t, dir, "DANE", `{
		"ticker": "DANE",
		"companyName": "Danish Industries",
		"currency": "DKK",
		"exchangeRate": {"dkkToUsd": 0.15},
		"marketData": {"currentPrice": 50, "sharesOutstanding": 1000000},
		"financialHistory": {
			"2022": {"revenue": 90000000, "netIncome": 9000000, "totalAssets": 100000000, "shareholdersEquity": 40000000, "freeCashFlow": 8000000},
			"2023": {"revenue": 100000000, "netIncome": 10000000, "totalAssets": 110000000, "shareholdersEquity": 45000000, "freeCashFlow": 9000000}
		}
	}`)

	facts, err := NewLoader(dir, zerolog.Nop()).Load("DANE")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if facts.Currency != "USD" {
		t.Errorf("currency = %q, want USD after conversion", facts.Currency)
	}
	if got := facts.Latest("revenue"); got != 100000000*0.15 {
		t.Errorf("converted revenue = %v, want %v", got, 100000000*0.15)
	}
}
