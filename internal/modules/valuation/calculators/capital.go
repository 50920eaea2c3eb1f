// Package calculators implements the individual valuation methods and the
// cost-of-capital math they share. Every method reports inapplicability as
// a value, never as an error.
package calculators

import (
	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
	"github.com/aristath/valuator/pkg/formulas"
)

// Cost of capital bounds
const (
	minCostOfEquity = 0.04
	maxCostOfEquity = 0.25
	minCostOfDebt   = 0.01
	maxCostOfDebt   = 0.15
	minWACC         = 0.04
	maxWACC         = 0.20
	maxTaxRate      = 0.40
)

// CapitalCalculator derives discount rates from company facts
type CapitalCalculator struct {
	facts *domain.CompanyFacts
	h     config.Heuristics
}

// NewCapitalCalculator creates a cost-of-capital calculator
func NewCapitalCalculator(facts *domain.CompanyFacts, h config.Heuristics) *CapitalCalculator {
	return &CapitalCalculator{facts: facts, h: h}
}

// CostOfEquity calculates the CAPM cost of equity, clamped to [4%, 25%].
// Risk parameters come from the data file when present, defaults otherwise.
func (c *CapitalCalculator) CostOfEquity() float64 {
	riskFree := c.h.RiskFreeRate
	marketPremium := c.h.MarketRiskPremium
	specificPremium := 0.0

	if rf := c.facts.RiskFactors; rf != nil {
		if rf.RiskFreeRate != nil {
			riskFree = *rf.RiskFreeRate
		}
		if rf.MarketRiskPremium != nil {
			marketPremium = *rf.MarketRiskPremium
		}
		if rf.SpecificRiskPremium != nil {
			specificPremium = *rf.SpecificRiskPremium
		}
	}

	costOfEquity := riskFree + c.facts.Beta()*marketPremium + specificPremium
	return formulas.Clamp(costOfEquity, minCostOfEquity, maxCostOfEquity)
}

// WACC calculates the weighted average cost of capital, clamped to
// [4%, 20%]. Book debt approximates market debt. Falls back to the cost of
// equity when the capital structure is degenerate.
func (c *CapitalCalculator) WACC() float64 {
	costOfEquity := c.CostOfEquity()

	marketCap := c.facts.MarketCap()
	totalDebt := c.facts.Latest(domain.FieldTotalDebt)
	totalValue := marketCap + totalDebt

	if totalValue <= 0 || !formulas.IsReasonable(totalValue) {
		return costOfEquity
	}

	weightEquity := marketCap / totalValue
	weightDebt := totalDebt / totalValue

	wacc := weightEquity*costOfEquity + weightDebt*c.CostOfDebt()*(1-c.EffectiveTaxRate())
	if !formulas.IsReasonable(wacc) {
		return costOfEquity
	}

	return formulas.Clamp(wacc, minWACC, maxWACC)
}

// CostOfDebt estimates the pre-tax cost of debt from interest expense over
// total debt, clamped to [1%, 15%]. Companies without debt or interest data
// get the risk-free rate plus a 2% spread.
func (c *CapitalCalculator) CostOfDebt() float64 {
	interestExpense := c.facts.Latest(domain.FieldInterestExpense)
	totalDebt := c.facts.Latest(domain.FieldTotalDebt)

	if totalDebt <= 0 || interestExpense <= 0 {
		return c.h.RiskFreeRate + 0.02
	}

	return formulas.Clamp(interestExpense/totalDebt, minCostOfDebt, maxCostOfDebt)
}

// EffectiveTaxRate estimates the tax rate from net income over pre-tax
// income, clamped to [0%, 40%]. Pre-tax income is derived from operating
// income less interest when not reported directly. Defaults to the standard
// corporate rate when the estimate is not computable.
func (c *CapitalCalculator) EffectiveTaxRate() float64 {
	netIncome := c.facts.Latest(domain.FieldNetIncome)

	var incomeBeforeTax float64
	if ibt := c.facts.LatestOptional(domain.FieldIncomeBeforeTax); ibt != nil && *ibt != 0 {
		incomeBeforeTax = *ibt
	} else {
		incomeBeforeTax = c.facts.Latest(domain.FieldOperatingIncome) - c.facts.Latest(domain.FieldInterestExpense)
	}

	if incomeBeforeTax <= 0 {
		return c.h.DefaultTaxRate
	}

	return formulas.Clamp(1-netIncome/incomeBeforeTax, 0, maxTaxRate)
}
