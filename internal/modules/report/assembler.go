// Package report turns the raw valuation numbers into the final report:
// recommendation, margin of safety, weighting rationale, and the narrative
// summary.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aristath/valuator/internal/domain"
	"github.com/aristath/valuator/internal/modules/valuation"
)

// Recommendation labels
const (
	RecommendationStrongBuy = "Strong Buy"
	RecommendationBuy       = "Buy"
	RecommendationHold      = "Hold"
	RecommendationSell      = "Sell"
)

// Assembler builds the final valuation report
type Assembler struct{}

// NewAssembler creates a report assembler
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble combines the computed pieces into a complete report
func (a *Assembler) Assemble(
	facts *domain.CompanyFacts,
	breakdown domain.ValuationBreakdown,
	aggregation valuation.Aggregation,
	risk domain.RiskProfile,
) domain.ValuationReport {
	currentPrice := facts.CurrentPrice()
	intrinsicValue := aggregation.IntrinsicValue

	upside := Upside(intrinsicValue, currentPrice)
	marginOfSafety := MarginOfSafety(intrinsicValue, currentPrice)
	recommendation := Recommendation(upside, marginOfSafety)

	return domain.ValuationReport{
		ID:                 uuid.NewString(),
		Ticker:             facts.Ticker,
		CompanyName:        facts.CompanyName,
		Sector:             facts.Sector,
		CurrentPrice:       currentPrice,
		IntrinsicValue:     intrinsicValue,
		Upside:             upside,
		MarginOfSafety:     marginOfSafety,
		Recommendation:     recommendation,
		Confidence:         aggregation.Confidence,
		Breakdown:          breakdown,
		WeightedValuations: aggregation.Methods,
		WeightingRationale: weightingRationale(facts, aggregation),
		Risk:               risk,
		Summary:            buildSummary(facts.CompanyName, intrinsicValue, upside, marginOfSafety, recommendation),
		GeneratedAt:        time.Now().UTC(),
	}
}

// Upside returns the percentage gap between intrinsic value and price
func Upside(intrinsicValue, currentPrice float64) float64 {
	if currentPrice <= 0 {
		return 0
	}
	return (intrinsicValue/currentPrice - 1) * 100
}

// MarginOfSafety returns how far the price sits below intrinsic value as a
// percentage of intrinsic value, floored at zero
func MarginOfSafety(intrinsicValue, currentPrice float64) float64 {
	if intrinsicValue <= 0 {
		return 0
	}
	margin := (intrinsicValue - currentPrice) / intrinsicValue * 100
	if margin < 0 {
		return 0
	}
	return margin
}

// Recommendation maps upside and margin of safety to an action label. All
// comparisons are strict, so exact boundary values resolve to the lower
// tier.
func Recommendation(upside, marginOfSafety float64) string {
	switch {
	case upside > 20 && marginOfSafety > 15:
		return RecommendationStrongBuy
	case upside > 10 && marginOfSafety > 10:
		return RecommendationBuy
	case upside > 0 && marginOfSafety > 5:
		return RecommendationHold
	case upside > -10:
		return RecommendationHold
	default:
		return RecommendationSell
	}
}

// buildSummary fills the four-part narrative from the computed numbers
func buildSummary(companyName string, intrinsicValue, upside, marginOfSafety float64, recommendation string) domain.Summary {
	direction := "undervalued"
	movement := "upside"
	if upside <= 0 {
		direction = "overvalued"
		movement = "downside"
	}
	emphasis := ""
	if upside > 20 {
		emphasis = "significantly "
	}

	protection := "Poor"
	switch {
	case marginOfSafety > 15:
		protection = "Excellent"
	case marginOfSafety > 10:
		protection = "Good"
	case marginOfSafety > 5:
		protection = "Adequate"
	}

	return domain.Summary{
		Valuation: fmt.Sprintf(
			"Based on comprehensive analysis using multiple valuation methods, %s has an estimated intrinsic value of $%.2f per share.",
			companyName, intrinsicValue),
		Opportunity: fmt.Sprintf(
			"The stock appears %s%s with %.1f%% potential %s.",
			emphasis, direction, abs(upside), movement),
		Risk: fmt.Sprintf(
			"Margin of safety: %.1f%%. %s downside protection.",
			marginOfSafety, protection),
		Recommendation: fmt.Sprintf("Investment recommendation: %s", recommendation),
	}
}

// weightingRationale explains the weighting decisions in plain language
func weightingRationale(facts *domain.CompanyFacts, aggregation valuation.Aggregation) []string {
	rationale := []string{}

	if sentence, ok := sectorRationale[facts.Sector]; ok {
		rationale = append(rationale, sentence)
	} else {
		rationale = append(rationale, "Neutral weighting profile applied - no sector-specific tilt for this company.")
	}

	downWeighted := []string{}
	for _, m := range aggregation.Methods {
		if m.ConfidenceWeight > 0 && m.FinalWeight < m.ConfidenceWeight {
			downWeighted = append(downWeighted, m.Method)
		}
	}
	if len(downWeighted) > 0 {
		rationale = append(rationale, fmt.Sprintf(
			"Outlier adjustment: %s down-weighted for diverging strongly from the cross-method median", strings.Join(downWeighted, ", ")))
	}

	if len(aggregation.Methods) == 1 {
		rationale = append(rationale, "Fallback: all other methods inapplicable, book value used as a conservative floor")
	}

	return rationale
}

// How each sector's characteristics tilt the method weights
var sectorRationale = map[string]string{
	"Technology":  "Technology weights: emphasis on discounted cash flow models for growth potential, reduced asset-based weight for an asset-light business model.",
	"Utilities":   "Utilities weights: emphasis on stable earnings and market multiples reflecting the regulated, income-oriented nature of the business.",
	"Real Estate": "Real Estate weights: emphasis on asset-based valuation reflecting the property portfolio as the primary store of value.",
	"Financials":  "Financials weights: emphasis on multiples and book value reflecting regulatory capital importance; DCF models are less reliable for banks.",
	"Energy":      "Energy weights: emphasis on market multiples with reduced earnings weight due to commodity-cycle volatility.",
	"Healthcare":  "Healthcare weights: balanced growth and stability approach with fundamentals-driven adjustments for R&D-intensive characteristics.",
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
