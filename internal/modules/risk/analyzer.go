// Package risk classifies financial, business, and valuation risk from a
// company snapshot, as categorical levels and as continuous 0-100 scores.
package risk

import (
	"github.com/aristath/valuator/internal/domain"
	"github.com/aristath/valuator/pkg/formulas"
)

// Sectors classified as structurally high or medium business risk; anything
// else is low
var (
	highRiskSectors = map[string]bool{
		"Technology":    true,
		"Biotechnology": true,
		"Energy":        true,
		"Materials":     true,
	}
	mediumRiskSectors = map[string]bool{
		"Healthcare":             true,
		"Industrials":            true,
		"Communication Services": true,
	}
)

// Analyzer computes the risk profile for one company
type Analyzer struct {
	facts *domain.CompanyFacts
}

// NewAnalyzer creates a risk analyzer
func NewAnalyzer(facts *domain.CompanyFacts) *Analyzer {
	return &Analyzer{facts: facts}
}

// Analyze performs the complete risk assessment
func (a *Analyzer) Analyze() domain.RiskProfile {
	debtToEquity := a.DebtToEquity()
	currentRatio := a.CurrentRatio()
	interestCoverage := a.InterestCoverage()
	peRatio := a.PERatio()
	pbRatio := a.PBRatio()
	beta := a.facts.Beta()

	volatilityRisk := volatilityLevel(beta)
	industryRisk := industryLevel(a.facts.Sector)

	return domain.RiskProfile{
		Financial: domain.FinancialRisk{
			RiskLevel:        financialLevel(debtToEquity, currentRatio, interestCoverage),
			DebtToEquity:     debtToEquity,
			CurrentRatio:     currentRatio,
			InterestCoverage: interestCoverage,
		},
		Business: domain.BusinessRisk{
			RiskLevel:      volatilityRisk.Max(industryRisk),
			Beta:           beta,
			VolatilityRisk: volatilityRisk,
			IndustryRisk:   industryRisk,
		},
		Valuation: domain.ValuationRisk{
			RiskLevel: valuationLevel(peRatio, pbRatio),
			PERatio:   peRatio,
			PBRatio:   pbRatio,
		},
		Scores: domain.RiskScores{
			Financial: a.FinancialScore(),
			Business:  a.BusinessScore(),
			Valuation: a.ValuationScore(),
		},
	}
}

// DebtToEquity returns total debt over equity, nil when equity is
// non-positive. Nil here signals negative-equity distress, not zero risk.
func (a *Analyzer) DebtToEquity() *float64 {
	equity := a.facts.Latest(domain.FieldShareholdersEquity)
	if equity <= 0 {
		return nil
	}
	ratio := a.facts.Latest(domain.FieldTotalDebt) / equity
	return &ratio
}

// CurrentRatio returns current assets over current liabilities, nil when
// current liabilities are non-positive
func (a *Analyzer) CurrentRatio() *float64 {
	liabilities := a.facts.Latest(domain.FieldCurrentLiabilities)
	if liabilities <= 0 {
		return nil
	}
	ratio := a.facts.Latest(domain.FieldCurrentAssets) / liabilities
	return &ratio
}

// InterestCoverage returns operating income over interest expense, nil
// when there is no interest expense
func (a *Analyzer) InterestCoverage() *float64 {
	interest := a.facts.Latest(domain.FieldInterestExpense)
	if interest <= 0 {
		return nil
	}
	ratio := a.facts.Latest(domain.FieldOperatingIncome) / interest
	return &ratio
}

// PERatio returns price over earnings per share, nil for non-positive
// earnings
func (a *Analyzer) PERatio() *float64 {
	netIncome := a.facts.Latest(domain.FieldNetIncome)
	if netIncome <= 0 {
		return nil
	}
	eps := netIncome / a.facts.SharesOutstanding()
	ratio := a.facts.CurrentPrice() / eps
	return &ratio
}

// PBRatio returns price over book value per share, nil for non-positive
// equity
func (a *Analyzer) PBRatio() *float64 {
	equity := a.facts.Latest(domain.FieldShareholdersEquity)
	if equity <= 0 {
		return nil
	}
	bookValuePerShare := equity / a.facts.SharesOutstanding()
	ratio := a.facts.CurrentPrice() / bookValuePerShare
	return &ratio
}

// PSRatio returns price over sales per share, nil for non-positive revenue
func (a *Analyzer) PSRatio() *float64 {
	revenue := a.facts.Latest(domain.FieldRevenue)
	if revenue <= 0 {
		return nil
	}
	salesPerShare := revenue / a.facts.SharesOutstanding()
	ratio := a.facts.CurrentPrice() / salesPerShare
	return &ratio
}

// ROE returns net income over equity, 0 for non-positive equity
func (a *Analyzer) ROE() float64 {
	equity := a.facts.Latest(domain.FieldShareholdersEquity)
	if equity <= 0 {
		return 0
	}
	return a.facts.Latest(domain.FieldNetIncome) / equity
}

// revenueVolatility returns the coefficient of variation of recent revenue.
// Sparse histories report high volatility rather than false stability.
func (a *Analyzer) revenueVolatility() float64 {
	revenues := a.facts.Series(domain.FieldRevenue, 5)
	if len(revenues) < 3 {
		return 0.5
	}

	cv := formulas.CoefficientOfVariation(revenues)
	if cv == nil {
		return 1.0
	}
	return *cv
}

// financialLevel converts balance-sheet ratios to a category via a point
// ladder. Uncomputable debt/equity scores as maximal risk.
func financialLevel(debtToEquity, currentRatio, interestCoverage *float64) domain.RiskLevel {
	score := 0

	switch {
	case debtToEquity == nil:
		score += 3 // negative equity
	case *debtToEquity > 2.0:
		score += 3
	case *debtToEquity > 1.0:
		score += 2
	case *debtToEquity > 0.5:
		score += 1
	}

	if currentRatio != nil {
		switch {
		case *currentRatio < 1.0:
			score += 2
		case *currentRatio < 1.5:
			score += 1
		}
	}

	if interestCoverage != nil {
		switch {
		case *interestCoverage < 2.0:
			score += 3
		case *interestCoverage < 5.0:
			score += 2
		case *interestCoverage < 10.0:
			score += 1
		}
	}

	switch {
	case score >= 5:
		return domain.RiskHigh
	case score >= 3:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func volatilityLevel(beta float64) domain.RiskLevel {
	switch {
	case beta > 1.5:
		return domain.RiskHigh
	case beta > 1.2:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func industryLevel(sector string) domain.RiskLevel {
	switch {
	case highRiskSectors[sector]:
		return domain.RiskHigh
	case mediumRiskSectors[sector]:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func valuationLevel(peRatio, pbRatio *float64) domain.RiskLevel {
	score := 0

	if peRatio != nil {
		switch {
		case *peRatio > 30:
			score += 2
		case *peRatio > 20:
			score += 1
		case *peRatio < 5:
			score += 1 // suspiciously low earnings multiple
		}
	}

	if pbRatio != nil {
		switch {
		case *pbRatio > 5:
			score += 2
		case *pbRatio > 3:
			score += 1
		case *pbRatio < 0.5:
			score += 1 // possible distress pricing
		}
	}

	switch {
	case score >= 3:
		return domain.RiskHigh
	case score >= 1:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}
