package calculators

import (
	"math"

	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
	"github.com/aristath/valuator/pkg/formulas"
)

// Method name labels
const (
	MethodFCFE = "FCFE"
	MethodFCFF = "FCFF"
	MethodDDM  = "DDM"
)

// DCFCalculator implements the discounted cash flow family: FCFE, FCFF and
// the Gordon growth dividend discount model
type DCFCalculator struct {
	facts   *domain.CompanyFacts
	capital *CapitalCalculator
	h       config.Heuristics
}

// NewDCFCalculator creates a DCF calculator
func NewDCFCalculator(facts *domain.CompanyFacts, capital *CapitalCalculator, h config.Heuristics) *DCFCalculator {
	return &DCFCalculator{facts: facts, capital: capital, h: h}
}

// upside returns the percentage gap between a value estimate and the
// current price
func upside(valuePerShare, currentPrice float64) float64 {
	return (formulas.SafeDivide(valuePerShare, currentPrice, 0) - 1) * 100
}

// FCFE values the equity by discounting projected free cash flow at the
// cost of equity. Growth starts at the historical CAGR (capped by the
// provided estimate and the ceiling) and decays geometrically toward the
// terminal rate.
func (d *DCFCalculator) FCFE() domain.ValuationOutcome {
	fcfHistory := d.facts.SeriesChronological(domain.FieldFreeCashFlow, d.h.EarningsHistoryYears)

	if len(fcfHistory) == 0 || allNonPositive(fcfHistory) {
		return domain.NotApplicableOutcome(MethodFCFE, "Negative or zero free cash flows")
	}

	latestFCF := fcfHistory[len(fcfHistory)-1]
	if latestFCF <= 0 {
		return domain.NotApplicableOutcome(MethodFCFE, "Latest free cash flow is negative or zero")
	}

	calculatedGrowth := formulas.CAGR(fcfHistory)
	providedGrowth := d.h.DefaultGrowthEstimate
	if d.facts.GrowthMetrics != nil && d.facts.GrowthMetrics.FCFGrowth5Y != nil {
		providedGrowth = *d.facts.GrowthMetrics.FCFGrowth5Y
	}
	initialGrowth := math.Min(math.Min(calculatedGrowth, providedGrowth), d.h.FCFEGrowthCap)

	discountRate := d.capital.CostOfEquity()
	terminalGrowth := d.h.TerminalGrowthRate
	years := d.h.FCFEProjectionYears

	pvSum := 0.0
	currentFCF := latestFCF
	for year := 1; year <= years; year++ {
		yearGrowth := initialGrowth * math.Pow(d.h.FCFEGrowthDecay, float64(year-1))
		currentFCF *= 1 + yearGrowth

		pv := formulas.PresentValue(currentFCF, discountRate, year)
		if pv == nil {
			return domain.NotApplicableOutcome(MethodFCFE, "Projected cash flows out of computable range")
		}
		pvSum += *pv
	}

	// Gordon growth terminal value; the cost-of-equity floor keeps the
	// denominator positive
	terminalFCF := currentFCF * (1 + terminalGrowth)
	terminalValue := terminalFCF / (discountRate - terminalGrowth)
	pvTerminal := formulas.PresentValue(terminalValue, discountRate, years)
	if pvTerminal == nil {
		return domain.NotApplicableOutcome(MethodFCFE, "Terminal value out of computable range")
	}

	valuePerShare := (pvSum + *pvTerminal) / d.facts.SharesOutstanding()

	return domain.ValuationOutcome{
		Method:        MethodFCFE,
		ValuePerShare: valuePerShare,
		Upside:        upside(valuePerShare, d.facts.CurrentPrice()),
		Assumptions: map[string]float64{
			"discountRate":   discountRate,
			"initialGrowth":  initialGrowth,
			"terminalGrowth": terminalGrowth,
			"latestFCF":      latestFCF,
			"terminalValue":  terminalValue,
		},
	}
}

// FCFF values the whole firm by discounting free cash flow to the firm at
// WACC over a 10-year horizon, then nets out debt to reach equity value
func (d *DCFCalculator) FCFF() domain.ValuationOutcome {
	ocfHistory := d.facts.SeriesChronological(domain.FieldOperatingCashFlow, d.h.EarningsHistoryYears)

	if len(ocfHistory) == 0 || allNonPositive(ocfHistory) {
		return domain.NotApplicableOutcome(MethodFCFF, "Negative or zero operating cash flows")
	}

	wacc := d.capital.WACC()

	latestOCF := d.facts.Latest(domain.FieldOperatingCashFlow)
	capex := d.facts.Latest(domain.FieldCapex)
	totalDebt := d.facts.Latest(domain.FieldTotalDebt)
	cash := d.facts.Latest(domain.FieldCash)

	// Interest tax shield on an assumed borrowing rate; actual interest
	// expense is already inside operating cash flow
	interestExpense := totalDebt * d.h.FCFFBorrowingRate
	taxShield := interestExpense * d.h.DefaultTaxRate
	latestFCFF := latestOCF - capex + taxShield

	if latestFCFF <= 0 {
		return domain.NotApplicableOutcome(MethodFCFF, "Negative free cash flow to firm")
	}

	revenueGrowth := d.h.DefaultGrowthEstimate
	if d.facts.GrowthMetrics != nil && d.facts.GrowthMetrics.RevenueGrowth5Y != nil {
		revenueGrowth = *d.facts.GrowthMetrics.RevenueGrowth5Y
	}
	initialGrowth := math.Min(revenueGrowth, d.h.FCFFGrowthCap)
	terminalGrowth := d.h.TerminalGrowthRate
	years := d.h.FCFFProjectionYears

	firmValue := 0.0
	currentFCFF := latestFCFF
	for year := 1; year <= years; year++ {
		growthRate := initialGrowth
		if year > 5 {
			// Growth fades linearly toward 30% of the initial rate by
			// the final year
			growthRate = initialGrowth * (1 - float64(year-5)/5*d.h.FCFFLateGrowthDecay)
		}

		currentFCFF *= 1 + growthRate
		pv := formulas.PresentValue(currentFCFF, wacc, year)
		if pv == nil {
			return domain.NotApplicableOutcome(MethodFCFF, "Projected cash flows out of computable range")
		}
		firmValue += *pv
	}

	terminalFCFF := currentFCFF * (1 + terminalGrowth)
	terminalValue := terminalFCFF / (wacc - terminalGrowth)
	pvTerminal := formulas.PresentValue(terminalValue, wacc, years)
	if pvTerminal == nil {
		return domain.NotApplicableOutcome(MethodFCFF, "Terminal value out of computable range")
	}
	firmValue += *pvTerminal

	netDebt := totalDebt - cash
	equityValue := firmValue - netDebt
	valuePerShare := equityValue / d.facts.SharesOutstanding()

	return domain.ValuationOutcome{
		Method:        MethodFCFF,
		ValuePerShare: valuePerShare,
		Upside:        upside(valuePerShare, d.facts.CurrentPrice()),
		Assumptions: map[string]float64{
			"wacc":           wacc,
			"initialGrowth":  initialGrowth,
			"terminalGrowth": terminalGrowth,
			"netDebt":        netDebt,
			"firmValue":      firmValue,
		},
	}
}

// DDM values the equity with the Gordon growth dividend discount model
func (d *DCFCalculator) DDM() domain.ValuationOutcome {
	currentDividend := d.facts.Latest(domain.FieldDividend)
	if currentDividend <= 0 {
		return domain.NotApplicableOutcome(MethodDDM, "Company does not pay dividends")
	}

	dividendGrowth := d.h.DefaultDividendGrowth
	if d.facts.Assumptions != nil && d.facts.Assumptions.DividendGrowthRate != nil {
		dividendGrowth = *d.facts.Assumptions.DividendGrowthRate
	}

	requiredReturn := d.capital.CostOfEquity()
	if dividendGrowth >= requiredReturn {
		return domain.NotApplicableOutcome(MethodDDM, "Dividend growth rate exceeds required return")
	}

	nextDividend := currentDividend * (1 + dividendGrowth)
	valuePerShare := nextDividend / (requiredReturn - dividendGrowth)

	return domain.ValuationOutcome{
		Method:        MethodDDM,
		ValuePerShare: valuePerShare,
		Upside:        upside(valuePerShare, d.facts.CurrentPrice()),
		Assumptions: map[string]float64{
			"currentDividend":    currentDividend,
			"dividendGrowthRate": dividendGrowth,
			"requiredReturn":     requiredReturn,
			"nextYearDividend":   nextDividend,
		},
	}
}

func allNonPositive(values []float64) bool {
	for _, v := range values {
		if v > 0 {
			return false
		}
	}
	return true
}
