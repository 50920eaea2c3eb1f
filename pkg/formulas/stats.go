package formulas

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// finiteValues filters out NaN and infinite entries
func finiteValues(data []float64) []float64 {
	valid := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			valid = append(valid, v)
		}
	}
	return valid
}

// Mean calculates the arithmetic mean of a slice of float64 values
// Returns nil if no finite values remain
func Mean(data []float64) *float64 {
	valid := finiteValues(data)
	if len(valid) == 0 {
		return nil
	}
	m := stat.Mean(valid, nil)
	return &m
}

// StdDev calculates the sample standard deviation of a slice of float64 values
// Returns nil with fewer than 2 finite values
func StdDev(data []float64) *float64 {
	valid := finiteValues(data)
	if len(valid) < 2 {
		return nil
	}
	sd := stat.StdDev(valid, nil)
	return &sd
}

// Variance calculates the sample variance of a slice of float64 values
func Variance(data []float64) *float64 {
	valid := finiteValues(data)
	if len(valid) < 2 {
		return nil
	}
	v := stat.Variance(valid, nil)
	return &v
}

// Median calculates the median of a slice of float64 values
// Returns nil if no finite values remain
func Median(data []float64) *float64 {
	valid := finiteValues(data)
	if len(valid) == 0 {
		return nil
	}

	sorted := make([]float64, len(valid))
	copy(sorted, valid)
	sort.Float64s(sorted)

	n := len(sorted)
	var m float64
	if n%2 == 0 {
		m = (sorted[n/2-1] + sorted[n/2]) / 2
	} else {
		m = sorted[n/2]
	}
	return &m
}

// Percentile calculates the p-th percentile (0-100 inclusive) with linear
// interpolation between adjacent ranks. Returns nil for empty input or a
// percentile outside [0, 100].
func Percentile(data []float64, percentile float64) *float64 {
	if percentile < 0 || percentile > 100 {
		return nil
	}

	valid := finiteValues(data)
	if len(valid) == 0 {
		return nil
	}

	sorted := make([]float64, len(valid))
	copy(sorted, valid)
	sort.Float64s(sorted)

	if percentile == 0 {
		return &sorted[0]
	}
	if percentile == 100 {
		return &sorted[len(sorted)-1]
	}

	index := (percentile / 100) * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper > len(sorted)-1 {
		upper = len(sorted) - 1
	}
	if lower == upper {
		return &sorted[lower]
	}

	weight := index - float64(lower)
	result := sorted[lower]*(1-weight) + sorted[upper]*weight
	return &result
}

// CoefficientOfVariation calculates stddev/mean, a dispersion measure.
// Returns nil with fewer than 2 values or a zero mean.
func CoefficientOfVariation(data []float64) *float64 {
	mean := Mean(data)
	sd := StdDev(data)
	if mean == nil || sd == nil || *mean == 0 {
		return nil
	}
	cv := *sd / *mean
	return &cv
}
