package valuation

import (
	"github.com/aristath/valuator/internal/domain"
	"github.com/aristath/valuator/pkg/formulas"
)

// Confidence labels for the overall estimate
const (
	ConfidenceHigh      = "High"
	ConfidenceMedium    = "Medium"
	ConfidenceLow       = "Low"
	ConfidenceUndefined = "Undefined"
)

// Aggregation combines the applicable method outcomes into one intrinsic
// value with a full audit trail of how each weight was derived
type Aggregation struct {
	IntrinsicValue float64
	Confidence     string
	Methods        []domain.WeightedMethod
}

// Aggregate blends the method outcomes into a single per-share intrinsic
// value. Weights start from the base table and are adjusted for sector,
// within-category agreement, and distance from the cross-method median,
// then normalized. All softening happens in the weights; no estimate is
// ever excluded outright.
func Aggregate(facts *domain.CompanyFacts, breakdown domain.ValuationBreakdown) Aggregation {
	candidates := assembleCandidates(breakdown)
	if len(candidates) == 0 {
		return Aggregation{Confidence: ConfidenceUndefined}
	}

	multipliers := sectorAdjustments(facts)
	for i := range candidates {
		candidates[i].SectorWeight = candidates[i].BaseWeight * multipliers.forCategory(candidates[i].Category)
	}

	applyConfidenceAdjustment(candidates)
	applyOutlierAdjustment(candidates)

	totalWeight := 0.0
	for i := range candidates {
		totalWeight += candidates[i].FinalWeight
	}

	if totalWeight <= 0 {
		// every estimate was crushed to zero weight; fall back to the
		// conservative book value floor
		return bookValueFallback(candidates)
	}

	intrinsicValue := 0.0
	for i := range candidates {
		candidates[i].NormalizedWeight = candidates[i].FinalWeight / totalWeight
		intrinsicValue += candidates[i].Value * candidates[i].NormalizedWeight
	}

	return Aggregation{
		IntrinsicValue: intrinsicValue,
		Confidence:     confidenceLabel(candidates),
		Methods:        candidates,
	}
}

// assembleCandidates collects applicable outcomes with their base weights.
// Book value participates even at zero as a conservative floor; tangible
// book and liquidation value stay in the breakdown for reference but do not
// enter the weighted blend.
func assembleCandidates(breakdown domain.ValuationBreakdown) []domain.WeightedMethod {
	outcomes := []struct {
		outcome  domain.ValuationOutcome
		category domain.MethodCategory
		always   bool
	}{
		{breakdown.DCF.FCFE, domain.CategoryDCF, false},
		{breakdown.DCF.FCFF, domain.CategoryDCF, false},
		{breakdown.DCF.DDM, domain.CategoryDCF, false},
		{breakdown.Relative.PE, domain.CategoryRelative, false},
		{breakdown.Relative.EVEBITDA, domain.CategoryRelative, false},
		{breakdown.Asset.BookValue, domain.CategoryAsset, true},
		{breakdown.Earnings.CapitalizedEarnings, domain.CategoryEarnings, false},
		{breakdown.Earnings.EarningsPowerValue, domain.CategoryEarnings, false},
	}

	candidates := make([]domain.WeightedMethod, 0, len(outcomes))
	for _, o := range outcomes {
		if o.outcome.NotApplicable && !o.always {
			continue
		}
		candidates = append(candidates, domain.WeightedMethod{
			Method:     o.outcome.Method,
			Value:      o.outcome.ValuePerShare,
			Category:   o.category,
			BaseWeight: baseWeights[o.outcome.Method],
		})
	}
	return candidates
}

// applyConfidenceAdjustment scales weights by how much the methods within
// each category agree. A category with a single method stays neutral.
func applyConfidenceAdjustment(candidates []domain.WeightedMethod) {
	byCategory := map[domain.MethodCategory][]float64{}
	for i := range candidates {
		byCategory[candidates[i].Category] = append(byCategory[candidates[i].Category], candidates[i].Value)
	}

	multipliers := map[domain.MethodCategory]float64{}
	for category, values := range byCategory {
		multipliers[category] = 1.0
		if len(values) < 2 {
			continue
		}
		if cv := formulas.CoefficientOfVariation(values); cv != nil {
			multipliers[category] = confidenceMultiplier(*cv)
		}
	}

	for i := range candidates {
		candidates[i].ConfidenceWeight = candidates[i].SectorWeight * multipliers[candidates[i].Category]
		candidates[i].FinalWeight = candidates[i].ConfidenceWeight
	}
}

// applyOutlierAdjustment softens estimates far from the cross-method
// median. Needs at least three candidates for the median to mean anything.
func applyOutlierAdjustment(candidates []domain.WeightedMethod) {
	if len(candidates) < 3 {
		return
	}

	values := make([]float64, len(candidates))
	for i := range candidates {
		values[i] = candidates[i].Value
	}

	median := formulas.Median(values)
	if median == nil {
		return
	}

	for i := range candidates {
		candidates[i].FinalWeight = candidates[i].ConfidenceWeight * outlierMultiplier(candidates[i].Value, *median)
	}
}

func bookValueFallback(candidates []domain.WeightedMethod) Aggregation {
	for i := range candidates {
		if candidates[i].Method != methodBookValue {
			continue
		}
		candidates[i].NormalizedWeight = 1.0
		return Aggregation{
			IntrinsicValue: candidates[i].Value,
			Confidence:     ConfidenceLow,
			Methods:        candidates,
		}
	}
	return Aggregation{Confidence: ConfidenceUndefined, Methods: candidates}
}

// confidenceLabel rates how tightly the contributing estimates cluster
func confidenceLabel(candidates []domain.WeightedMethod) string {
	values := make([]float64, 0, len(candidates))
	for i := range candidates {
		values = append(values, candidates[i].Value)
	}

	cv := formulas.CoefficientOfVariation(values)
	if cv == nil {
		return ConfidenceLow
	}

	switch {
	case *cv < 0.2:
		return ConfidenceHigh
	case *cv < 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
