package calculators

import (
	"math"

	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
	"github.com/aristath/valuator/pkg/formulas"
)

// Method name labels
const (
	MethodCapitalizedEarnings = "Capitalized Earnings"
	MethodEarningsPowerValue  = "Earnings Power Value"
)

// EarningsCalculator implements earnings-capitalization valuations
type EarningsCalculator struct {
	facts   *domain.CompanyFacts
	capital *CapitalCalculator
	h       config.Heuristics
}

// NewEarningsCalculator creates an earnings-valuation calculator
func NewEarningsCalculator(facts *domain.CompanyFacts, capital *CapitalCalculator, h config.Heuristics) *EarningsCalculator {
	return &EarningsCalculator{facts: facts, capital: capital, h: h}
}

func (e *EarningsCalculator) earningsHistory() []float64 {
	return e.facts.SeriesChronological(domain.FieldNetIncome, e.h.EarningsHistoryYears)
}

// CapitalizedEarnings capitalizes average historical earnings at the cost
// of equity
func (e *EarningsCalculator) CapitalizedEarnings() domain.ValuationOutcome {
	history := e.earningsHistory()
	if len(history) == 0 {
		return domain.NotApplicableOutcome(MethodCapitalizedEarnings, "No earnings history available")
	}

	avg := formulas.Mean(history)
	if avg == nil || *avg <= 0 {
		return domain.NotApplicableOutcome(MethodCapitalizedEarnings, "Negative or zero average earnings")
	}

	capitalizationRate := e.capital.CostOfEquity()
	capitalizedValue := *avg / capitalizationRate
	valuePerShare := capitalizedValue / e.facts.SharesOutstanding()

	return domain.ValuationOutcome{
		Method:        MethodCapitalizedEarnings,
		ValuePerShare: valuePerShare,
		Upside:        upside(valuePerShare, e.facts.CurrentPrice()),
		Assumptions: map[string]float64{
			"avgEarnings":        *avg,
			"capitalizationRate": capitalizationRate,
			"totalValue":         capitalizedValue,
			"yearsOfHistory":     float64(len(history)),
		},
	}
}

// EarningsPowerValue capitalizes normalized earnings (outlier-filtered
// historical average) at the cost of equity with no growth assumption
func (e *EarningsCalculator) EarningsPowerValue() domain.ValuationOutcome {
	history := e.earningsHistory()
	if len(history) < 3 {
		return domain.NotApplicableOutcome(MethodEarningsPowerValue, "Insufficient earnings history")
	}

	normalized := normalizedEarnings(history)
	if normalized <= 0 {
		return domain.NotApplicableOutcome(MethodEarningsPowerValue, "Negative or zero normalized earnings")
	}

	discountRate := e.capital.CostOfEquity()
	earningsPowerValue := normalized / discountRate
	valuePerShare := earningsPowerValue / e.facts.SharesOutstanding()

	return domain.ValuationOutcome{
		Method:        MethodEarningsPowerValue,
		ValuePerShare: valuePerShare,
		Upside:        upside(valuePerShare, e.facts.CurrentPrice()),
		Assumptions: map[string]float64{
			"normalizedEarnings": normalized,
			"discountRate":       discountRate,
			"earningsPowerValue": earningsPowerValue,
		},
	}
}

// normalizedEarnings averages the history after dropping points more than
// two standard deviations from the mean. The filter only engages when the
// deviation exceeds 10% of the mean, so low-volatility series are not
// over-filtered.
func normalizedEarnings(history []float64) float64 {
	mean := formulas.Mean(history)
	if mean == nil {
		return 0
	}

	sd := formulas.StdDev(history)
	if sd != nil && *sd > math.Abs(*mean)*0.1 {
		filtered := make([]float64, 0, len(history))
		for _, v := range history {
			if math.Abs(v-*mean) <= 2**sd {
				filtered = append(filtered, v)
			}
		}
		if len(filtered) > 0 {
			history = filtered
		}
	}

	avg := formulas.Mean(history)
	if avg == nil {
		return 0
	}
	return *avg
}
