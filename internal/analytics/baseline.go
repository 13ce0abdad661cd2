// ABOUTME: Percentile and IQR baseline computation over a numeric sample.
// ABOUTME: Pure functions, no store dependency.
package analytics

import (
	"math"
	"sort"

	"github.com/openvital/vital/internal/models"
)

// Percentile returns the p-th percentile of an ascending-sorted sample
// using linear interpolation between adjacent ranks. Empty input yields 0.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	k := (p / 100.0) * float64(len(sorted)-1)
	f := int(math.Floor(k))
	c := int(math.Ceil(k))
	if f == c {
		return sorted[f]
	}
	return sorted[f] + (k-float64(f))*(sorted[c]-sorted[f])
}

// ComputeBaseline sorts a sample and returns its quartile statistics.
func ComputeBaseline(values []float64) models.Baseline {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := Percentile(sorted, 25)
	q3 := Percentile(sorted, 75)
	return models.Baseline{
		Q1:     q1,
		Median: Percentile(sorted, 50),
		Q3:     q3,
		IQR:    q3 - q1,
	}
}
