package calculators

import (
	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
)

// Method name labels
const (
	MethodPE       = "P/E Valuation"
	MethodEVEBITDA = "EV/EBITDA Valuation"
)

// RelativeCalculator implements market-multiple valuations against
// sector-appropriate fair multiples
type RelativeCalculator struct {
	facts *domain.CompanyFacts
	h     config.Heuristics
}

// NewRelativeCalculator creates a relative-valuation calculator
func NewRelativeCalculator(facts *domain.CompanyFacts, h config.Heuristics) *RelativeCalculator {
	return &RelativeCalculator{facts: facts, h: h}
}

// PE values the company at a fair price-to-earnings multiple. A
// company-specific benchmark from the data file takes precedence over the
// sector table.
func (r *RelativeCalculator) PE() domain.ValuationOutcome {
	netIncome := r.facts.Latest(domain.FieldNetIncome)
	if netIncome <= 0 {
		return domain.NotApplicableOutcome(MethodPE, "Negative or zero net income")
	}

	eps := netIncome / r.facts.SharesOutstanding()
	currentPE := r.facts.CurrentPrice() / eps

	fairPE := r.fairPEMultiple()
	valuePerShare := eps * fairPE

	return domain.ValuationOutcome{
		Method:        MethodPE,
		ValuePerShare: valuePerShare,
		Upside:        upside(valuePerShare, r.facts.CurrentPrice()),
		Assumptions: map[string]float64{
			"currentPE":        currentPE,
			"fairPE":           fairPE,
			"earningsPerShare": eps,
		},
	}
}

// EVEBITDA values the company at a fair enterprise-value multiple. EBITDA
// is read from the data file when reported, otherwise estimated from
// operating income.
func (r *RelativeCalculator) EVEBITDA() domain.ValuationOutcome {
	var ebitda float64
	if e := r.facts.LatestOptional(domain.FieldEBITDA); e != nil && *e > 0 {
		ebitda = *e
	} else {
		operatingIncome := r.facts.Latest(domain.FieldOperatingIncome)
		if operatingIncome <= 0 {
			return domain.NotApplicableOutcome(MethodEVEBITDA, "Cannot calculate EBITDA - no operating income data")
		}
		ebitda = operatingIncome * r.h.EBITDAFromOperatingIncome
	}

	if ebitda <= 0 {
		return domain.NotApplicableOutcome(MethodEVEBITDA, "Negative or zero EBITDA")
	}

	marketCap := r.facts.MarketCap()
	totalDebt := r.facts.Latest(domain.FieldTotalDebt)
	cash := r.facts.Latest(domain.FieldCash)

	enterpriseValue := marketCap + totalDebt - cash
	currentMultiple := enterpriseValue / ebitda

	fairMultiple := SectorEVEBITDAMultiple(r.facts.Sector, r.h.DefaultEVEBITDAMultiple)
	fairEV := ebitda * fairMultiple
	fairEquityValue := fairEV - totalDebt + cash
	valuePerShare := fairEquityValue / r.facts.SharesOutstanding()

	return domain.ValuationOutcome{
		Method:        MethodEVEBITDA,
		ValuePerShare: valuePerShare,
		Upside:        upside(valuePerShare, r.facts.CurrentPrice()),
		Assumptions: map[string]float64{
			"currentMultiple": currentMultiple,
			"fairMultiple":    fairMultiple,
			"ebitda":          ebitda,
			"enterpriseValue": enterpriseValue,
		},
	}
}

func (r *RelativeCalculator) fairPEMultiple() float64 {
	if b := r.facts.IndustryBenchmarks; b != nil && b.AveragePE != nil && *b.AveragePE > 0 {
		return *b.AveragePE
	}
	return SectorPEMultiple(r.facts.Sector, r.h.DefaultPEMultiple)
}
