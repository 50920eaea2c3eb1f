package formulas

import (
	"math"
)

// Growth rates from short volatile series get clamped to this band
const (
	MinGrowthRate = -0.50
	MaxGrowthRate = 0.50
)

// reasonableLimit bounds values considered usable in downstream math
const reasonableLimit = 1e12

// SafeDivide divides numerator by denominator, returning def on a zero denominator
func SafeDivide(numerator, denominator, def float64) float64 {
	if denominator == 0 {
		return def
	}
	return numerator / denominator
}

// Clamp bounds value between min and max
func Clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

// IsReasonable reports whether a value is finite and within usable magnitude
func IsReasonable(value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value >= -reasonableLimit && value <= reasonableLimit
}

// CAGR calculates the compound annual growth rate from a chronologically
// ordered series. Non-positive entries are dropped before the calculation;
// with fewer than 2 positive values the result is 0. The result is clamped
// to [MinGrowthRate, MaxGrowthRate] to suppress distortion from short
// volatile series.
func CAGR(values []float64) float64 {
	positive := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			positive = append(positive, v)
		}
	}

	if len(positive) < 2 {
		return 0
	}

	beginning := positive[0]
	ending := positive[len(positive)-1]
	periods := float64(len(positive) - 1)

	cagr := math.Pow(ending/beginning, 1/periods) - 1
	if math.IsNaN(cagr) || math.IsInf(cagr, 0) {
		return 0
	}

	return Clamp(cagr, MinGrowthRate, MaxGrowthRate)
}

// PresentValue discounts a future cash flow back by the given number of
// periods. Returns nil for negative periods, rates at or below -100%, or a
// non-finite result.
func PresentValue(futureValue, rate float64, periods int) *float64 {
	if periods < 0 || rate <= -1 {
		return nil
	}

	if rate == 0 {
		return &futureValue
	}

	result := futureValue / math.Pow(1+rate, float64(periods))
	if !IsReasonable(result) {
		return nil
	}

	return &result
}

// CompoundGrowth grows an initial value at the given rate per period.
// Returns nil for non-positive starting values, negative periods, or a
// result out of usable range.
func CompoundGrowth(initialValue, growthRate float64, periods int) *float64 {
	if initialValue <= 0 || periods < 0 {
		return nil
	}

	result := initialValue * math.Pow(1+growthRate, float64(periods))
	if !IsReasonable(result) {
		return nil
	}

	return &result
}
