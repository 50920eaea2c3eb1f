package calculators

import (
	"testing"

	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
)

func earningsCalculator(t *testing.T, facts *domain.CompanyFacts) *EarningsCalculator {
	t.Helper()
	h := config.DefaultHeuristics()
	return NewEarningsCalculator(facts, NewCapitalCalculator(facts, h), h)
}

func TestCapitalizedEarnings(t *testing.T) {
	result := earningsCalculator(t, techFacts(t)).CapitalizedEarnings()

	if result.NotApplicable {
		t.Fatalf("CapitalizedEarnings() not applicable: %s", result.Reason)
	}
	// 50M average earnings capitalized at the 11.7% cost of equity
	want := 5.0e7 / 0.117 / 1e6
	if !approxEqual(result.ValuePerShare, want, 1e-6) {
		t.Errorf("CapitalizedEarnings() = %v, want %v", result.ValuePerShare, want)
	}
	if got := result.Assumptions["yearsOfHistory"]; got != 5 {
		t.Errorf("years of history = %v, want 5", got)
	}
}

func TestCapitalizedEarningsNotApplicableOnAverageLoss(t *testing.T) {
	facts := techFacts(t)
	for _, period := range facts.FinancialHistory {
		period[domain.FieldNetIncome] = -2e7
	}

	if result := earningsCalculator(t, facts).CapitalizedEarnings(); !result.NotApplicable {
		t.Error("CapitalizedEarnings() applicable, want not applicable for loss-making history")
	}
}

func TestEarningsPowerValue(t *testing.T) {
	result := earningsCalculator(t, techFacts(t)).EarningsPowerValue()

	if result.NotApplicable {
		t.Fatalf("EarningsPowerValue() not applicable: %s", result.Reason)
	}
	// steady growth history has no outliers to drop, so the normalized
	// average equals the plain average
	if got := result.Assumptions["normalizedEarnings"]; !approxEqual(got, 5.0e7, 1e-3) {
		t.Errorf("normalized earnings = %v, want 5.0e7", got)
	}
}

func TestEarningsPowerValueRequiresHistory(t *testing.T) {
	facts := techFacts(t)
	for year := range facts.FinancialHistory {
		if year != "2022" && year != "2023" {
			delete(facts.FinancialHistory, year)
		}
	}

	if result := earningsCalculator(t, facts).EarningsPowerValue(); !result.NotApplicable {
		t.Error("EarningsPowerValue() applicable, want not applicable with two periods")
	}
}

func TestNormalizedEarnings(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		want    float64
	}{
		// one-off spike beyond two standard deviations gets dropped
		{"outlier filtered", []float64{100, 100, 100, 100, 100, 100, 1000}, 100},
		// low-volatility series passes through unfiltered
		{"stable series", []float64{100, 101, 102}, 101},
		{"empty history", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizedEarnings(tt.history); !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("normalizedEarnings(%v) = %v, want %v", tt.history, got, tt.want)
			}
		})
	}
}
