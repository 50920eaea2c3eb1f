// Package domain defines the core data model for valuation runs.
package domain

import (
	"encoding/json"
	"errors"
	"sort"
)

// ErrNoFinancialHistory is returned when a snapshot carries no usable periods
var ErrNoFinancialHistory = errors.New("no financial history available")

// Field identifies a financial-statement line item within a period
type Field string

// Financial-statement fields as they appear in company data files
const (
	FieldRevenue            Field = "revenue"
	FieldNetIncome          Field = "netIncome"
	FieldFreeCashFlow       Field = "freeCashFlow"
	FieldOperatingCashFlow  Field = "operatingCashFlow"
	FieldCapex              Field = "capex"
	FieldTotalDebt          Field = "totalDebt"
	FieldCash               Field = "cashAndEquivalents"
	FieldShareholdersEquity Field = "shareholdersEquity"
	FieldGoodwill           Field = "goodwill"
	FieldDividend           Field = "dividend"
	FieldDividendsPaid      Field = "dividendsPaid"
	FieldEPS                Field = "eps"
	FieldBookValuePerShare  Field = "bookValuePerShare"
	FieldOperatingIncome    Field = "operatingIncome"
	FieldInterestExpense    Field = "interestExpense"
	FieldIncomeBeforeTax    Field = "incomeBeforeTax"
	FieldCurrentAssets      Field = "currentAssets"
	FieldCurrentLiabilities Field = "currentLiabilities"
	FieldTotalAssets        Field = "totalAssets"
	FieldTotalLiabilities   Field = "totalLiabilities"
	FieldEBITDA             Field = "ebitda"
)

// PeriodData holds one period's financial-statement values. Fields may be
// absent or null in the source data; non-numeric entries are dropped on
// decode rather than failing the whole record.
type PeriodData map[Field]float64

// UnmarshalJSON decodes a period, skipping null and non-numeric values
func (p *PeriodData) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(PeriodData, len(raw))
	for key, msg := range raw {
		var v float64
		if err := json.Unmarshal(msg, &v); err != nil {
			continue
		}
		out[Field(key)] = v
	}

	*p = out
	return nil
}

// MarketData holds current market observations for a company
type MarketData struct {
	CurrentPrice      float64  `json:"currentPrice" validate:"gt=0"`
	SharesOutstanding float64  `json:"sharesOutstanding" validate:"gt=0"`
	Beta              *float64 `json:"beta,omitempty"`
}

// RiskFactors holds CAPM inputs when the data file provides them
type RiskFactors struct {
	RiskFreeRate        *float64 `json:"riskFreeRate,omitempty"`
	MarketRiskPremium   *float64 `json:"marketRiskPremium,omitempty"`
	SpecificRiskPremium *float64 `json:"specificRiskPremium,omitempty"`
}

// GrowthMetrics holds externally supplied growth estimates
type GrowthMetrics struct {
	FCFGrowth5Y     *float64 `json:"fcfGrowth5Y,omitempty"`
	RevenueGrowth5Y *float64 `json:"revenueGrowth5Y,omitempty"`
}

// Assumptions holds analyst-provided model assumptions
type Assumptions struct {
	DividendGrowthRate *float64 `json:"dividendGrowthRate,omitempty"`
}

// IndustryBenchmarks holds company-specific multiple benchmarks that take
// precedence over the sector lookup tables
type IndustryBenchmarks struct {
	AveragePE *float64 `json:"averagePE,omitempty"`
}

// DividendInfo holds the dividend section of a data file
type DividendInfo struct {
	CurrentAnnualDividend *float64 `json:"currentAnnualDividend,omitempty"`
	CurrentDividendYield  *float64 `json:"currentDividendYield,omitempty"`
}

// CompanyFacts is an immutable snapshot of one company's normalized market
// and financial data. All monetary values are assumed to be in a single
// reporting currency; conversion happens at ingestion, before construction.
type CompanyFacts struct {
	Ticker             string                `json:"ticker" validate:"required"`
	CompanyName        string                `json:"companyName" validate:"required"`
	Sector             string                `json:"sector"`
	Industry           string                `json:"industry,omitempty"`
	Currency           string                `json:"currency"`
	MarketData         MarketData            `json:"marketData"`
	FinancialHistory   map[string]PeriodData `json:"financialHistory" validate:"min=2"`
	RiskFactors        *RiskFactors          `json:"riskFactors,omitempty"`
	GrowthMetrics      *GrowthMetrics        `json:"growthMetrics,omitempty"`
	Assumptions        *Assumptions          `json:"assumptions,omitempty"`
	IndustryBenchmarks *IndustryBenchmarks   `json:"industryBenchmarks,omitempty"`
	DividendInfo       *DividendInfo         `json:"dividendInfo,omitempty"`
}

// NewCompanyFacts finalizes a decoded snapshot: applies defaults and checks
// the financial-history invariant. Accessors on the returned value never
// fail; degenerate data is the ingest layer's problem.
func NewCompanyFacts(facts CompanyFacts) (*CompanyFacts, error) {
	if len(facts.FinancialHistory) == 0 {
		return nil, ErrNoFinancialHistory
	}
	if facts.Sector == "" {
		facts.Sector = "Unknown"
	}
	if facts.Currency == "" {
		facts.Currency = "USD"
	}
	return &facts, nil
}

// CurrentPrice returns the current stock price
func (c *CompanyFacts) CurrentPrice() float64 {
	return c.MarketData.CurrentPrice
}

// SharesOutstanding returns shares outstanding
func (c *CompanyFacts) SharesOutstanding() float64 {
	return c.MarketData.SharesOutstanding
}

// MarketCap returns price times shares outstanding
func (c *CompanyFacts) MarketCap() float64 {
	return c.MarketData.CurrentPrice * c.MarketData.SharesOutstanding
}

// Beta returns the company beta, defaulting to 1.0 when absent
func (c *CompanyFacts) Beta() float64 {
	if c.MarketData.Beta == nil {
		return 1.0
	}
	return *c.MarketData.Beta
}

// sortedPeriods returns period labels in ascending order. "TTM" sorts after
// all 4-digit years by plain lexicographic comparison.
func (c *CompanyFacts) sortedPeriods() []string {
	periods := make([]string, 0, len(c.FinancialHistory))
	for p := range c.FinancialHistory {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	return periods
}

// LatestPeriod returns the most recent period label
func (c *CompanyFacts) LatestPeriod() string {
	periods := c.sortedPeriods()
	return periods[len(periods)-1]
}

// Latest returns the most recent value for a field, 0 when absent
func (c *CompanyFacts) Latest(field Field) float64 {
	v, _ := c.FinancialHistory[c.LatestPeriod()][field]
	return v
}

// LatestOptional returns the most recent value for a field, nil when absent
func (c *CompanyFacts) LatestOptional(field Field) *float64 {
	if v, ok := c.FinancialHistory[c.LatestPeriod()][field]; ok {
		return &v
	}
	return nil
}

// Series returns up to n most recent values for a field, newest first,
// skipping periods where the field is absent. Pass n <= 0 for all periods.
func (c *CompanyFacts) Series(field Field, n int) []float64 {
	periods := c.sortedPeriods()

	values := make([]float64, 0, len(periods))
	taken := 0
	for i := len(periods) - 1; i >= 0; i-- {
		if n > 0 && taken >= n {
			break
		}
		taken++
		if v, ok := c.FinancialHistory[periods[i]][field]; ok {
			values = append(values, v)
		}
	}
	return values
}

// SeriesChronological returns the same values as Series but oldest first,
// the order growth-rate calculations expect
func (c *CompanyFacts) SeriesChronological(field Field, n int) []float64 {
	values := c.Series(field, n)
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}
	return values
}

// HasDividends reports whether the company pays a dividend, checking the
// latest per-share dividend, cash dividends paid, and the dividend-info
// section in that order
func (c *CompanyFacts) HasDividends() bool {
	if c.Latest(FieldDividend) > 0 {
		return true
	}
	if c.Latest(FieldDividendsPaid) > 0 {
		return true
	}
	if c.DividendInfo != nil && c.DividendInfo.CurrentAnnualDividend != nil &&
		*c.DividendInfo.CurrentAnnualDividend > 0 {
		return true
	}
	return false
}
