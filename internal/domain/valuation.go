package domain

import "time"

// MethodCategory groups valuation methods by family for weighting
type MethodCategory string

const (
	CategoryDCF      MethodCategory = "dcf"
	CategoryRelative MethodCategory = "relative"
	CategoryAsset    MethodCategory = "asset"
	CategoryEarnings MethodCategory = "earnings"
)

// ValuationOutcome is the result of one valuation method. A method that
// cannot be applied to a company is reported through NotApplicable and
// Reason, never through an error: inapplicability is an expected business
// condition.
type ValuationOutcome struct {
	Method        string             `json:"method"`
	ValuePerShare float64            `json:"valuePerShare"`
	Upside        float64            `json:"upside"`
	Assumptions   map[string]float64 `json:"assumptions,omitempty"`
	NotApplicable bool               `json:"notApplicable"`
	Reason        string             `json:"reason,omitempty"`
}

// NotApplicableOutcome builds the placeholder outcome for a method that
// does not apply to this company
func NotApplicableOutcome(method, reason string) ValuationOutcome {
	return ValuationOutcome{
		Method:        method,
		ValuePerShare: 0,
		Upside:        -100,
		NotApplicable: true,
		Reason:        reason,
	}
}

// WeightedMethod is one row of the aggregation breakdown, tracking how a
// method's weight evolved through each adjustment step
type WeightedMethod struct {
	Method           string         `json:"method"`
	Value            float64        `json:"value"`
	Category         MethodCategory `json:"category"`
	BaseWeight       float64        `json:"baseWeight"`
	SectorWeight     float64        `json:"sectorWeight"`
	ConfidenceWeight float64        `json:"confidenceWeight"`
	FinalWeight      float64        `json:"finalWeight"`
	NormalizedWeight float64        `json:"normalizedWeight"`
}

// DCFOutcomes groups the discounted cash flow family results
type DCFOutcomes struct {
	FCFE ValuationOutcome `json:"fcfe"`
	FCFF ValuationOutcome `json:"fcff"`
	DDM  ValuationOutcome `json:"ddm"`
}

// RelativeOutcomes groups the market-multiple results
type RelativeOutcomes struct {
	PE       ValuationOutcome `json:"peValuation"`
	EVEBITDA ValuationOutcome `json:"evEbitdaValuation"`
}

// AssetOutcomes groups the asset-based results
type AssetOutcomes struct {
	BookValue         ValuationOutcome `json:"bookValue"`
	TangibleBookValue ValuationOutcome `json:"tangibleBookValue"`
	LiquidationValue  ValuationOutcome `json:"liquidationValue"`
}

// EarningsOutcomes groups the earnings-capitalization results
type EarningsOutcomes struct {
	CapitalizedEarnings ValuationOutcome `json:"capitalizedEarnings"`
	EarningsPowerValue  ValuationOutcome `json:"earningsPowerValue"`
}

// ValuationBreakdown holds every individual method result for auditability
type ValuationBreakdown struct {
	DCF      DCFOutcomes      `json:"dcf"`
	Relative RelativeOutcomes `json:"relative"`
	Asset    AssetOutcomes    `json:"assetBased"`
	Earnings EarningsOutcomes `json:"earningsBased"`
}

// RiskLevel is a three-step risk classification
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Severity orders risk levels for comparisons; unknown levels rank lowest
func (r RiskLevel) Severity() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// Max returns the more severe of two risk levels
func (r RiskLevel) Max(other RiskLevel) RiskLevel {
	if other.Severity() > r.Severity() {
		return other
	}
	return r
}

// FinancialRisk covers balance-sheet and coverage ratios. Nil ratios mean
// "not computable" (e.g. negative equity), which is itself a risk signal.
type FinancialRisk struct {
	RiskLevel        RiskLevel `json:"riskLevel"`
	DebtToEquity     *float64  `json:"debtToEquity"`
	CurrentRatio     *float64  `json:"currentRatio"`
	InterestCoverage *float64  `json:"interestCoverage"`
}

// BusinessRisk covers volatility and sector exposure
type BusinessRisk struct {
	RiskLevel      RiskLevel `json:"riskLevel"`
	Beta           float64   `json:"beta"`
	VolatilityRisk RiskLevel `json:"volatilityRisk"`
	IndustryRisk   RiskLevel `json:"industryRisk"`
}

// ValuationRisk covers market-pricing multiples
type ValuationRisk struct {
	RiskLevel RiskLevel `json:"riskLevel"`
	PERatio   *float64  `json:"peRatio"`
	PBRatio   *float64  `json:"pbRatio"`
}

// RiskScores are continuous 0-100 views of the same assessments, higher
// meaning riskier, for programmatic consumers
type RiskScores struct {
	Financial float64 `json:"financial"`
	Business  float64 `json:"business"`
	Valuation float64 `json:"valuation"`
}

// RiskProfile is the complete risk assessment for one company
type RiskProfile struct {
	Financial FinancialRisk `json:"financial"`
	Business  BusinessRisk  `json:"business"`
	Valuation ValuationRisk `json:"valuation"`
	Scores    RiskScores    `json:"scores"`
}

// Summary is the four-part narrative generated from the computed numbers
type Summary struct {
	Valuation      string `json:"valuation"`
	Opportunity    string `json:"opportunity"`
	Risk           string `json:"risk"`
	Recommendation string `json:"recommendation"`
}

// ValuationReport is the full output of one valuation run
type ValuationReport struct {
	ID                 string             `json:"id"`
	Ticker             string             `json:"ticker"`
	CompanyName        string             `json:"companyName"`
	Sector             string             `json:"sector"`
	CurrentPrice       float64            `json:"currentPrice"`
	IntrinsicValue     float64            `json:"intrinsicValue"`
	Upside             float64            `json:"upside"`
	MarginOfSafety     float64            `json:"marginOfSafety"`
	Recommendation     string             `json:"recommendation"`
	Confidence         string             `json:"confidence"`
	Breakdown          ValuationBreakdown `json:"valuationBreakdown"`
	WeightedValuations []WeightedMethod   `json:"weightedValuations"`
	WeightingRationale []string           `json:"weightingRationale,omitempty"`
	Risk               RiskProfile        `json:"riskMetrics"`
	Summary            Summary            `json:"summary"`
	GeneratedAt        time.Time          `json:"generatedAt"`
}
