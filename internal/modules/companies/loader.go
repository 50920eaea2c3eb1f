// Package companies loads, validates, and normalizes company data files.
// One JSON file per ticker; everything downstream consumes the validated
// CompanyFacts snapshot.
package companies

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/valuator/internal/domain"
)

// companyFile is the on-disk shape: the facts plus ingestion-only fields
// that never reach the core
type companyFile struct {
	domain.CompanyFacts
	ExchangeRate *exchangeRate `json:"exchangeRate,omitempty"`
}

// Loader reads company data files from the data directory
type Loader struct {
	dataDir   string
	validator *Validator
	log       zerolog.Logger
}

// NewLoader creates a company data loader
func NewLoader(dataDir string, log zerolog.Logger) *Loader {
	return &Loader{
		dataDir:   dataDir,
		validator: NewValidator(),
		log:       log.With().Str("module", "companies").Logger(),
	}
}

// List returns the tickers of all available data files, sorted
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", l.dataDir, err)
	}

	tickers := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		tickers = append(tickers, strings.ToUpper(strings.TrimSuffix(name, ".json")))
	}
	sort.Strings(tickers)
	return tickers, nil
}

// Load reads, validates, and currency-normalizes one company's data file
func (l *Loader) Load(ticker string) (*domain.CompanyFacts, error) {
	path := filepath.Join(l.dataDir, strings.ToUpper(ticker)+".json")

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, ticker)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file companyFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := l.validator.Validate(&file.CompanyFacts); err != nil {
		return nil, fmt.Errorf("invalid data for %s: %w", ticker, err)
	}

	normalizeCurrency(&file.CompanyFacts, file.ExchangeRate)

	facts, err := domain.NewCompanyFacts(file.CompanyFacts)
	if err != nil {
		return nil, fmt.Errorf("invalid data for %s: %w", ticker, err)
	}

	l.log.Debug().
		Str("ticker", facts.Ticker).
		Str("sector", facts.Sector).
		Int("periods", len(facts.FinancialHistory)).
		Msg("company data loaded")

	return facts, nil
}

// LoadAll loads every available company, skipping files that fail
// validation so one bad file does not block a batch run
func (l *Loader) LoadAll() ([]*domain.CompanyFacts, error) {
	tickers, err := l.List()
	if err != nil {
		return nil, err
	}

	companies := make([]*domain.CompanyFacts, 0, len(tickers))
	for _, ticker := range tickers {
		facts, err := l.Load(ticker)
		if err != nil {
			l.log.Warn().Err(err).Str("ticker", ticker).Msg("skipping company")
			continue
		}
		companies = append(companies, facts)
	}
	return companies, nil
}
