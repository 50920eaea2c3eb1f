package valuation

import (
	"github.com/aristath/valuator/internal/domain"
	"github.com/aristath/valuator/internal/modules/valuation/calculators"
	"github.com/aristath/valuator/pkg/formulas"
)

// Local aliases keep the weight table readable
const (
	methodFCFE                = calculators.MethodFCFE
	methodFCFF                = calculators.MethodFCFF
	methodDDM                 = calculators.MethodDDM
	methodPE                  = calculators.MethodPE
	methodEVEBITDA            = calculators.MethodEVEBITDA
	methodBookValue           = calculators.MethodBookValue
	methodCapitalizedEarnings = calculators.MethodCapitalizedEarnings
	methodEarningsPowerValue  = calculators.MethodEarningsPowerValue
)

// Base method weights before any adjustment. DCF methods dominate because
// they are grounded in fundamentals; asset methods act as a conservative
// floor.
var baseWeights = map[string]float64{
	methodFCFE:                0.25,
	methodFCFF:                0.25,
	methodDDM:                 0.15,
	methodPE:                  0.15,
	methodEVEBITDA:            0.15,
	methodBookValue:           0.05,
	methodCapitalizedEarnings: 0.10,
	methodEarningsPowerValue:  0.05,
}

// categoryMultipliers is one sector's weight adjustment per method family
type categoryMultipliers struct {
	DCF      float64
	Relative float64
	Asset    float64
	Earnings float64
}

func (m categoryMultipliers) forCategory(category domain.MethodCategory) float64 {
	switch category {
	case domain.CategoryDCF:
		return m.DCF
	case domain.CategoryRelative:
		return m.Relative
	case domain.CategoryAsset:
		return m.Asset
	case domain.CategoryEarnings:
		return m.Earnings
	default:
		return 1.0
	}
}

var neutralMultipliers = categoryMultipliers{DCF: 1.0, Relative: 1.0, Asset: 1.0, Earnings: 1.0}

// Which valuation lenses a sector rewards. Growth sectors favor cash flow
// projections, asset-heavy sectors favor the balance sheet.
var sectorMultipliers = map[string]categoryMultipliers{
	"Technology":  {DCF: 1.2, Relative: 1.1, Asset: 0.5, Earnings: 0.8},
	"Utilities":   {DCF: 1.0, Relative: 1.2, Asset: 1.1, Earnings: 1.3},
	"Real Estate": {DCF: 0.9, Relative: 1.0, Asset: 1.5, Earnings: 1.1},
	"Financials":  {DCF: 0.8, Relative: 1.3, Asset: 1.2, Earnings: 1.1},
	"Energy":      {DCF: 1.1, Relative: 1.2, Asset: 1.0, Earnings: 0.7},
	"Healthcare":  {DCF: 1.1, Relative: 1.2, Asset: 0.8, Earnings: 1.0},
}

// sectorAdjustments returns the weight multipliers for a company. Healthcare
// gets a further fundamentals-driven tilt: companies with strong growth,
// margins, and returns look more like technology names, and established
// dividend payers lean toward earnings-based lenses.
func sectorAdjustments(facts *domain.CompanyFacts) categoryMultipliers {
	multipliers, ok := sectorMultipliers[facts.Sector]
	if !ok {
		return neutralMultipliers
	}

	if facts.Sector == "Healthcare" {
		if revenueGrowth(facts) > 0.10 && profitMargin(facts) > 0.30 && returnOnEquity(facts) > 0.25 {
			multipliers.Relative *= 1.3
			multipliers.DCF *= 1.15
			multipliers.Asset *= 0.6
		}
		if dividendYield(facts) > 0.015 {
			multipliers.Earnings *= 1.2
			multipliers.DCF *= 1.1
		}
	}

	return multipliers
}

// confidenceMultiplier maps the dispersion of a category's value estimates
// to a weight adjustment. Methods within a family that agree reinforce each
// other; strong disagreement signals the lens does not suit this company.
func confidenceMultiplier(cv float64) float64 {
	switch {
	case cv <= 0.10:
		return 1.2
	case cv <= 0.20:
		return 1.1
	case cv <= 0.40:
		return 1.0
	case cv <= 0.60:
		return 0.8
	default:
		return 0.6
	}
}

// outlierMultiplier down-weights estimates far from the cross-method
// median instead of excluding them outright
func outlierMultiplier(value, median float64) float64 {
	if median <= 0 {
		return 1.0
	}

	ratio := value / median
	switch {
	case ratio > 5.0 || ratio < 0.2:
		return 0.1
	case ratio > 3.0 || ratio < 0.33:
		return 0.3
	case ratio > 2.0 || ratio < 0.5:
		return 0.6
	default:
		return 1.0
	}
}

func revenueGrowth(facts *domain.CompanyFacts) float64 {
	revenues := facts.Series(domain.FieldRevenue, 2)
	if len(revenues) < 2 || revenues[1] <= 0 {
		return 0
	}
	return revenues[0]/revenues[1] - 1
}

func profitMargin(facts *domain.CompanyFacts) float64 {
	return formulas.SafeDivide(facts.Latest(domain.FieldNetIncome), facts.Latest(domain.FieldRevenue), 0)
}

func returnOnEquity(facts *domain.CompanyFacts) float64 {
	equity := facts.Latest(domain.FieldShareholdersEquity)
	if equity <= 0 {
		return 0
	}
	return facts.Latest(domain.FieldNetIncome) / equity
}

func dividendYield(facts *domain.CompanyFacts) float64 {
	if di := facts.DividendInfo; di != nil && di.CurrentDividendYield != nil {
		return *di.CurrentDividendYield
	}
	return formulas.SafeDivide(facts.Latest(domain.FieldDividend), facts.CurrentPrice(), 0)
}
