// ABOUTME: Tests for calendar bucketing, regression direction, and the
// ABOUTME: clamped 30-day projection.
package analytics

import (
	"testing"
)

func TestComputeTrendWeeklyDecreasing(t *testing.T) {
	e, s := testEngine(t)

	// One weight per week across four ISO weeks: 83.0, 82.5, 82.0, 81.5.
	weights := []float64{83.0, 82.5, 82.0, 81.5}
	for i, w := range weights {
		insertAt(t, s, "weight", w, (len(weights)-1-i)*7)
	}

	result, err := e.ComputeTrend("weight", PeriodWeekly, 0)
	if err != nil {
		t.Fatalf("ComputeTrend: %v", err)
	}
	if len(result.Data) != 4 {
		t.Fatalf("got %d buckets, want 4", len(result.Data))
	}
	if result.Trend.Direction != "decreasing" {
		t.Errorf("Direction = %s, want decreasing", result.Trend.Direction)
	}
	if result.Trend.Rate >= 0 {
		t.Errorf("Rate = %g, want negative", result.Trend.Rate)
	}
	if result.Trend.RateUnit != "per week" {
		t.Errorf("RateUnit = %q, want per week", result.Trend.RateUnit)
	}
}

func TestComputeTrendProjectionClamp(t *testing.T) {
	e, s := testEngine(t)

	// Steep two-bucket daily slope: the raw projection far exceeds the
	// last average and must clamp to the +50% bound.
	insertAt(t, s, "steps", 100, 1)
	insertAt(t, s, "steps", 650, 0)

	result, err := e.ComputeTrend("steps", PeriodDaily, 0)
	if err != nil {
		t.Fatalf("ComputeTrend: %v", err)
	}
	if result.Trend.Projected30d == nil {
		t.Fatal("expected a projection")
	}
	p := *result.Trend.Projected30d
	if p < 325 || p > 975 {
		t.Errorf("Projected30d = %g, want within [325, 975]", p)
	}
	if p != 975 {
		t.Errorf("Projected30d = %g, want clamped to 975", p)
	}
}

func TestComputeTrendSingleBucket(t *testing.T) {
	e, s := testEngine(t)

	insertAt(t, s, "weight", 81, 0)
	insertAt(t, s, "weight", 83, 0)

	result, err := e.ComputeTrend("weight", PeriodDaily, 0)
	if err != nil {
		t.Fatalf("ComputeTrend: %v", err)
	}
	if result.Trend.Direction != "stable" {
		t.Errorf("Direction = %s, want stable", result.Trend.Direction)
	}
	if result.Trend.Rate != 0 {
		t.Errorf("Rate = %g, want 0", result.Trend.Rate)
	}
	if result.Trend.Projected30d == nil || *result.Trend.Projected30d != 82 {
		t.Errorf("Projected30d = %v, want 82 (single bucket average)", result.Trend.Projected30d)
	}
}

func TestComputeTrendEmpty(t *testing.T) {
	e, _ := testEngine(t)

	result, err := e.ComputeTrend("weight", PeriodWeekly, 0)
	if err != nil {
		t.Fatalf("ComputeTrend: %v", err)
	}
	if len(result.Data) != 0 {
		t.Errorf("got %d buckets, want 0", len(result.Data))
	}
	if result.Trend.Projected30d != nil {
		t.Error("expected no projection for empty history")
	}
}

func TestComputeTrendKeepsLastN(t *testing.T) {
	e, s := testEngine(t)

	for i := 0; i < 20; i++ {
		insertAt(t, s, "weight", 80, i)
	}

	result, err := e.ComputeTrend("weight", PeriodDaily, 5)
	if err != nil {
		t.Fatalf("ComputeTrend: %v", err)
	}
	if len(result.Data) != 5 {
		t.Errorf("got %d buckets, want 5", len(result.Data))
	}
	// Buckets sort ascending by label; the last kept bucket is today.
	if got := result.Data[len(result.Data)-1].Label; got != "2026-08-12" {
		t.Errorf("last bucket = %s, want 2026-08-12", got)
	}
}
