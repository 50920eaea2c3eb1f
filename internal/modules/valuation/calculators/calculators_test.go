package calculators

import (
	"math"
	"testing"

	"github.com/aristath/valuator/internal/config"
	"github.com/aristath/valuator/internal/domain"
)

// techFacts is a profitable dividend-paying technology company with five
// years of growing cash flows, used across the calculator tests.
func techFacts(t *testing.T) *domain.CompanyFacts {
	t.Helper()

	beta := 1.2
	facts, err := domain.NewCompanyFacts(domain.CompanyFacts{
		Ticker:      "TECH",
		CompanyName: "Tech Example Corp",
		Sector:      "Technology",
		MarketData: domain.MarketData{
			CurrentPrice:      100,
			SharesOutstanding: 1e6,
			Beta:              &beta,
		},
		FinancialHistory: map[string]domain.PeriodData{
			"2019": {
				domain.FieldRevenue:           3.0e8,
				domain.FieldNetIncome:         4.0e7,
				domain.FieldFreeCashFlow:      6.0e7,
				domain.FieldOperatingCashFlow: 9.0e7,
			},
			"2020": {
				domain.FieldRevenue:           3.3e8,
				domain.FieldNetIncome:         4.5e7,
				domain.FieldFreeCashFlow:      6.5e7,
				domain.FieldOperatingCashFlow: 9.5e7,
			},
			"2021": {
				domain.FieldRevenue:           3.6e8,
				domain.FieldNetIncome:         5.0e7,
				domain.FieldFreeCashFlow:      7.0e7,
				domain.FieldOperatingCashFlow: 1.0e8,
			},
			"2022": {
				domain.FieldRevenue:           4.0e8,
				domain.FieldNetIncome:         5.5e7,
				domain.FieldFreeCashFlow:      7.5e7,
				domain.FieldOperatingCashFlow: 1.05e8,
			},
			"2023": {
				domain.FieldRevenue:            4.4e8,
				domain.FieldNetIncome:          6.0e7,
				domain.FieldFreeCashFlow:       8.0e7,
				domain.FieldOperatingCashFlow:  1.1e8,
				domain.FieldCapex:              3.0e7,
				domain.FieldTotalDebt:          5.0e7,
				domain.FieldCash:               2.0e7,
				domain.FieldShareholdersEquity: 4.0e8,
				domain.FieldGoodwill:           5.0e7,
				domain.FieldDividend:           2.0,
				domain.FieldInterestExpense:    2.5e6,
				domain.FieldOperatingIncome:    8.0e7,
				domain.FieldCurrentAssets:      1.2e8,
				domain.FieldCurrentLiabilities: 6.0e7,
				domain.FieldTotalAssets:        6.0e8,
				domain.FieldTotalLiabilities:   2.0e8,
			},
		},
	})
	if err != nil {
		t.Fatalf("NewCompanyFacts() error = %v", err)
	}
	return facts
}

func defaultCapital(t *testing.T, facts *domain.CompanyFacts) *CapitalCalculator {
	t.Helper()
	return NewCapitalCalculator(facts, config.DefaultHeuristics())
}

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
