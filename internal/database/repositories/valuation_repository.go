// Package repositories holds the persistence layer for valuation runs.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/valuator/internal/domain"
)

// ErrNotFound is returned when no stored valuation matches the query
var ErrNotFound = errors.New("valuation not found")

// ValuationSummary is the lightweight row used for listings; the full
// report is stored as a msgpack snapshot and only decoded on demand
type ValuationSummary struct {
	ID             string    `json:"id"`
	Ticker         string    `json:"ticker"`
	CompanyName    string    `json:"companyName"`
	Sector         string    `json:"sector"`
	CurrentPrice   float64   `json:"currentPrice"`
	IntrinsicValue float64   `json:"intrinsicValue"`
	Upside         float64   `json:"upside"`
	MarginOfSafety float64   `json:"marginOfSafety"`
	Recommendation string    `json:"recommendation"`
	Confidence     string    `json:"confidence"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// ValuationRepository stores and retrieves valuation reports
type ValuationRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewValuationRepository creates a valuation repository
func NewValuationRepository(db *sql.DB, log zerolog.Logger) *ValuationRepository {
	return &ValuationRepository{
		db:  db,
		log: log.With().Str("repo", "valuation").Logger(),
	}
}

// Save persists a complete valuation report
func (r *ValuationRepository) Save(report domain.ValuationReport) error {
	snapshot, err := msgpack.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO valuations (
			id, ticker, company_name, sector, current_price, intrinsic_value,
			upside, margin_of_safety, recommendation, confidence, report, generated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.Ticker, report.CompanyName, report.Sector,
		report.CurrentPrice, report.IntrinsicValue, report.Upside,
		report.MarginOfSafety, report.Recommendation, report.Confidence,
		snapshot, report.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save valuation for %s: %w", report.Ticker, err)
	}

	r.log.Debug().Str("ticker", report.Ticker).Str("id", report.ID).Msg("valuation saved")
	return nil
}

// Latest returns the most recent full report for a ticker
func (r *ValuationRepository) Latest(ticker string) (*domain.ValuationReport, error) {
	var snapshot []byte
	err := r.db.QueryRow(`
		SELECT report FROM valuations
		WHERE ticker = ?
		ORDER BY generated_at DESC
		LIMIT 1`, ticker).Scan(&snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ticker)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load valuation for %s: %w", ticker, err)
	}

	var report domain.ValuationReport
	if err := msgpack.Unmarshal(snapshot, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report for %s: %w", ticker, err)
	}
	return &report, nil
}

// History returns summaries of past runs for a ticker, newest first
func (r *ValuationRepository) History(ticker string, limit int) ([]ValuationSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT id, ticker, company_name, sector, current_price, intrinsic_value,
		       upside, margin_of_safety, recommendation, confidence, generated_at
		FROM valuations
		WHERE ticker = ?
		ORDER BY generated_at DESC
		LIMIT ?`, ticker, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", ticker, err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

// LatestPerTicker returns the newest summary for every valued company
func (r *ValuationRepository) LatestPerTicker() ([]ValuationSummary, error) {
	rows, err := r.db.Query(`
		SELECT id, ticker, company_name, sector, current_price, intrinsic_value,
		       upside, margin_of_safety, recommendation, confidence, generated_at
		FROM valuations
		WHERE id IN (
			SELECT id FROM valuations v
			WHERE generated_at = (
				SELECT MAX(generated_at) FROM valuations WHERE ticker = v.ticker
			)
		)
		ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest valuations: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func scanSummaries(rows *sql.Rows) ([]ValuationSummary, error) {
	summaries := []ValuationSummary{}
	for rows.Next() {
		var s ValuationSummary
		if err := rows.Scan(
			&s.ID, &s.Ticker, &s.CompanyName, &s.Sector, &s.CurrentPrice,
			&s.IntrinsicValue, &s.Upside, &s.MarginOfSafety,
			&s.Recommendation, &s.Confidence, &s.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan valuation row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
