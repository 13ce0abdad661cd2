// ABOUTME: Pearson correlation between two metrics' per-day averages.
// ABOUTME: Pairs are matched on calendar date over the overlapping history.
package analytics

import (
	"fmt"
	"math"
	"sort"
)

// CorrelationResult describes the linear relationship between two metrics.
type CorrelationResult struct {
	MetricA        string  `json:"metric_a"`
	MetricB        string  `json:"metric_b"`
	Coefficient    float64 `json:"coefficient"`
	DataPoints     int     `json:"data_points"`
	Interpretation string  `json:"interpretation"`
}

// minCorrelationPairs is the smallest sample a coefficient is reported for.
const minCorrelationPairs = 3

// Correlate computes the Pearson correlation between the per-day averages
// of two metric types over their overlapping dates. lastDays > 0 restricts
// pairs to that trailing window.
func (e *Engine) Correlate(metricA, metricB string, lastDays int) (*CorrelationResult, error) {
	dailyA, err := e.dailyAverages(metricA)
	if err != nil {
		return nil, err
	}
	dailyB, err := e.dailyAverages(metricB)
	if err != nil {
		return nil, err
	}

	var cutoff string
	if lastDays > 0 {
		cutoff = dateKey(e.today().AddDate(0, 0, -lastDays))
	}

	var dates []string
	for date := range dailyA {
		if _, ok := dailyB[date]; !ok {
			continue
		}
		if cutoff != "" && date < cutoff {
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)

	result := &CorrelationResult{
		MetricA:    metricA,
		MetricB:    metricB,
		DataPoints: len(dates),
	}
	if len(dates) < minCorrelationPairs {
		result.Interpretation = "insufficient data"
		return result, nil
	}

	xs := make([]float64, len(dates))
	ys := make([]float64, len(dates))
	for i, date := range dates {
		xs[i] = dailyA[date]
		ys[i] = dailyB[date]
	}

	result.Coefficient = round2(pearson(xs, ys))
	result.Interpretation = interpret(result.Coefficient, len(dates))
	return result, nil
}

// dailyAverages folds a metric's history into one average per UTC date.
func (e *Engine) dailyAverages(metricType string) (map[string]float64, error) {
	entries, err := e.store.QueryByTypeAsc(metricType, 0)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, entry := range entries {
		d := dateKey(entry.Timestamp)
		sums[d] += entry.Value
		counts[d]++
	}
	avgs := make(map[string]float64, len(sums))
	for d, sum := range sums {
		avgs[d] = sum / float64(counts[d])
	}
	return avgs, nil
}

// pearson computes the correlation coefficient via the sum-based formula.
// A numerically degenerate denominator reports 0.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
		sumYY += ys[i] * ys[i]
	}

	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denominator < 1e-10 {
		return 0
	}
	return numerator / denominator
}

func interpret(coefficient float64, pairs int) string {
	abs := math.Abs(coefficient)
	var strength string
	switch {
	case abs < 0.3:
		strength = "weak"
	case abs < 0.7:
		strength = "moderate"
	default:
		strength = "strong"
	}
	if pairs < 10 {
		return fmt.Sprintf("%s (low sample size: %d pairs)", strength, pairs)
	}
	return strength
}
