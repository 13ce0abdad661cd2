// ABOUTME: Tests for anomaly detection against trailing baselines.
// ABOUTME: Covers deviation direction, flat baselines, and threshold factors.
package analytics

import (
	"testing"

	"github.com/openvital/vital/internal/models"
)

func TestDetectAnomalyAbove(t *testing.T) {
	e, s := testEngine(t)

	// 14 days of heart_rate clustered 70-76, then a 95 today.
	baseline := []float64{70, 72, 74, 71, 73, 75, 70, 76, 72, 74, 71, 73, 75, 76}
	for i, v := range baseline {
		insertAt(t, s, "heart_rate", v, 14-i)
	}
	insertAt(t, s, "heart_rate", 95, 0)

	result, err := e.DetectAnomalies("heart_rate", 14, models.ThresholdModerate)
	if err != nil {
		t.Fatalf("DetectAnomalies: %v", err)
	}
	if len(result.Anomalies) == 0 {
		t.Fatal("expected at least one anomaly")
	}
	a := result.Anomalies[0]
	if a.Deviation != "above" {
		t.Errorf("Deviation = %s, want above", a.Deviation)
	}
	if a.Value != 95 {
		t.Errorf("Value = %g, want 95", a.Value)
	}
	if a.Severity != models.SeverityAlert {
		t.Errorf("Severity = %s, want alert", a.Severity)
	}
}

func TestDetectAnomalyFlatBaseline(t *testing.T) {
	e, s := testEngine(t)

	// Constant history: IQR is zero; a today-value equal to the constant
	// is never anomalous under the strict-inequality band test.
	for i := 0; i < 10; i++ {
		insertAt(t, s, "weight", 80, 10-i)
	}
	insertAt(t, s, "weight", 80, 0)

	result, err := e.DetectAnomalies("weight", 14, models.ThresholdModerate)
	if err != nil {
		t.Fatalf("DetectAnomalies: %v", err)
	}
	if len(result.Anomalies) != 0 {
		t.Errorf("expected zero anomalies, got %d", len(result.Anomalies))
	}
	if len(result.CleanTypes) != 1 || result.CleanTypes[0] != "weight" {
		t.Errorf("CleanTypes = %v, want [weight]", result.CleanTypes)
	}
}

func TestDetectAnomalyThresholds(t *testing.T) {
	e, s := testEngine(t)

	// Sorted baseline gives Q1=71, Q3=75, IQR=4. Upper bound is 79 under
	// strict, 81 under moderate, 83 under relaxed; 81 is only strictly
	// outside the strict band.
	baseline := []float64{70, 70, 71, 71, 71, 72, 72, 73, 74, 75, 75, 75, 76, 76}
	for i, v := range baseline {
		insertAt(t, s, "heart_rate", v, 14-i)
	}
	insertAt(t, s, "heart_rate", 81, 0)

	strict, err := e.DetectAnomalies("heart_rate", 14, models.ThresholdStrict)
	if err != nil {
		t.Fatalf("strict: %v", err)
	}
	if len(strict.Anomalies) != 1 {
		t.Errorf("strict: got %d anomalies, want 1", len(strict.Anomalies))
	}

	relaxed, err := e.DetectAnomalies("heart_rate", 14, models.ThresholdRelaxed)
	if err != nil {
		t.Fatalf("relaxed: %v", err)
	}
	if len(relaxed.Anomalies) != 0 {
		t.Errorf("relaxed: got %d anomalies, want 0", len(relaxed.Anomalies))
	}
}

func TestDetectAnomalySkipsThinHistory(t *testing.T) {
	e, s := testEngine(t)

	// Only 3 historical points: below the minimum, so the type is
	// neither scanned nor clean.
	for i := 1; i <= 3; i++ {
		insertAt(t, s, "mood", 7, i)
	}
	insertAt(t, s, "mood", 2, 0)

	result, err := e.DetectAnomalies("mood", 14, models.ThresholdModerate)
	if err != nil {
		t.Fatalf("DetectAnomalies: %v", err)
	}
	if len(result.Anomalies) != 0 {
		t.Errorf("expected no anomalies, got %d", len(result.Anomalies))
	}
	if len(result.ScannedTypes) != 0 {
		t.Errorf("ScannedTypes = %v, want empty", result.ScannedTypes)
	}
}
