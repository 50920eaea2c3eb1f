package calculators

import (
	"testing"

	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
)

func factsWithBeta(t *testing.T, beta *float64) *domain.CompanyFacts {
	t.Helper()
	facts := techFacts(t)
	facts.MarketData.Beta = beta
	return facts
}

func TestCostOfEquity(t *testing.T) {
	beta12, beta50, betaNeg := 1.2, 5.0, -3.0

	tests := []struct {
		name string
		beta *float64
		want float64
	}{
		{"default beta", nil, 0.105},      // 4.5% + 1.0 * 6%
		{"moderate beta", &beta12, 0.117}, // 4.5% + 1.2 * 6%
		{"extreme beta clamps high", &beta50, 0.25},
		{"negative beta clamps low", &betaNeg, 0.04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capital := defaultCapital(t, factsWithBeta(t, tt.beta))
			if got := capital.CostOfEquity(); !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("CostOfEquity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCostOfEquityUsesProvidedRiskFactors(t *testing.T) {
	riskFree, premium, specific := 0.03, 0.05, 0.02
	facts := techFacts(t)
	facts.RiskFactors = &domain.RiskFactors{
		RiskFreeRate:        &riskFree,
		MarketRiskPremium:   &premium,
		SpecificRiskPremium: &specific,
	}

	// 3% + 1.2 * 5% + 2%
	want := 0.11
	if got := defaultCapital(t, facts).CostOfEquity(); !approxEqual(got, want, 1e-9) {
		t.Errorf("CostOfEquity() = %v, want %v", got, want)
	}
}

func TestWACCNeverExceedsCostOfEquity(t *testing.T) {
	// After-tax debt is cheaper than equity, so blending in any amount of
	// debt can only pull the rate down.
	capital := defaultCapital(t, techFacts(t))

	costOfEquity := capital.CostOfEquity()
	wacc := capital.WACC()

	if wacc > costOfEquity {
		t.Errorf("WACC() = %v, exceeds cost of equity %v", wacc, costOfEquity)
	}
	if wacc < minWACC || wacc > maxWACC {
		t.Errorf("WACC() = %v, outside [%v, %v]", wacc, minWACC, maxWACC)
	}
}

func TestWACCFallsBackWithoutDebt(t *testing.T) {
	facts := techFacts(t)
	latest := facts.FinancialHistory["2023"]
	latest[domain.FieldTotalDebt] = 0
	latest[domain.FieldInterestExpense] = 0

	capital := defaultCapital(t, facts)
	if got, want := capital.WACC(), capital.CostOfEquity(); !approxEqual(got, want, 1e-9) {
		t.Errorf("WACC() = %v, want cost of equity %v for an all-equity firm", got, want)
	}
}

func TestCostOfDebt(t *testing.T) {
	capital := defaultCapital(t, techFacts(t))

	// 2.5M interest on 50M debt
	if got := capital.CostOfDebt(); !approxEqual(got, 0.05, 1e-9) {
		t.Errorf("CostOfDebt() = %v, want 0.05", got)
	}
}

func TestCostOfDebtDefaultsWithoutInterestData(t *testing.T) {
	facts := techFacts(t)
	facts.FinancialHistory["2023"][domain.FieldInterestExpense] = 0

	// risk-free plus 2% spread
	want := config.DefaultHeuristics().RiskFreeRate + 0.02
	if got := defaultCapital(t, facts).CostOfDebt(); !approxEqual(got, want, 1e-9) {
		t.Errorf("CostOfDebt() = %v, want %v", got, want)
	}
}

func TestEffectiveTaxRate(t *testing.T) {
	capital := defaultCapital(t, techFacts(t))

	// 1 - 60M / (80M - 2.5M)
	want := 1 - 6.0e7/7.75e7
	if got := capital.EffectiveTaxRate(); !approxEqual(got, want, 1e-9) {
		t.Errorf("EffectiveTaxRate() = %v, want %v", got, want)
	}
}

func TestEffectiveTaxRateDefaultsOnLoss(t *testing.T) {
	facts := techFacts(t)
	facts.FinancialHistory["2023"][domain.FieldOperatingIncome] = -1e7

	want := config.DefaultHeuristics().DefaultTaxRate
	if got := defaultCapital(t, facts).EffectiveTaxRate(); !approxEqual(got, want, 1e-9) {
		t.Errorf("EffectiveTaxRate() = %v, want default %v", got, want)
	}
}
