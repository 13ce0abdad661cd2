// ABOUTME: Tests for the daily status overview: BMI, pain alerts, the
// ABOUTME: logging streak, and the active-medication rollup.
package analytics

import (
	"testing"

	"github.com/openvital/vital/internal/models"
)

func testAlerts() AlertConfig {
	return AlertConfig{PainThreshold: 5, PainConsecutiveDays: 3}
}

func TestStatusBMI(t *testing.T) {
	e, s := testEngine(t)
	insertAt(t, s, "weight", 82.0, 0)
	height := 180.0

	status, err := e.Status(StatusParams{HeightCm: &height, Alerts: testAlerts()})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	if status.Profile.LatestWeightKg == nil || *status.Profile.LatestWeightKg != 82.0 {
		t.Errorf("LatestWeightKg = %v, want 82", status.Profile.LatestWeightKg)
	}
	// 82 / 1.8^2 = 25.3086... rounds to 25.3
	if status.Profile.BMI == nil || *status.Profile.BMI != 25.3 {
		t.Errorf("BMI = %v, want 25.3", status.Profile.BMI)
	}
	if status.Profile.BMICategory == nil || *status.Profile.BMICategory != "overweight" {
		t.Errorf("BMICategory = %v, want overweight", status.Profile.BMICategory)
	}
}

func TestStatusNoHeightNoBMI(t *testing.T) {
	e, s := testEngine(t)
	insertAt(t, s, "weight", 82.0, 0)

	status, err := e.Status(StatusParams{Alerts: testAlerts()})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Profile.BMI != nil {
		t.Errorf("BMI = %v, want nil without height", status.Profile.BMI)
	}
}

func TestStatusLoggingStreak(t *testing.T) {
	e, s := testEngine(t)
	insertAt(t, s, "weight", 82.0, 0)
	insertAt(t, s, "sleep", 7.5, 1)
	insertAt(t, s, "weight", 82.2, 2)
	// gap at daysAgo 3
	insertAt(t, s, "weight", 82.4, 4)

	status, err := e.Status(StatusParams{Alerts: testAlerts()})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Streaks.LoggingDays != 3 {
		t.Errorf("LoggingDays = %d, want 3", status.Streaks.LoggingDays)
	}
}

func TestStatusPainAlerts(t *testing.T) {
	e, s := testEngine(t)
	insertAt(t, s, "pain", 7, 0)
	insertAt(t, s, "soreness", 3, 0)

	status, err := e.Status(StatusParams{Alerts: testAlerts()})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.Today.PainAlerts) != 1 {
		t.Fatalf("got %d pain alerts, want 1", len(status.Today.PainAlerts))
	}
	alert := status.Today.PainAlerts[0]
	if alert.Type != "pain" || alert.Value != 7 {
		t.Errorf("alert = %+v, want pain/7", alert)
	}
}

func TestStatusConsecutivePain(t *testing.T) {
	e, s := testEngine(t)
	insertAt(t, s, "pain", 6, 0)
	insertAt(t, s, "pain", 7, 1)
	insertAt(t, s, "pain", 5, 2)
	// below threshold three days ago ends the run
	insertAt(t, s, "pain", 2, 3)

	status, err := e.Status(StatusParams{Alerts: testAlerts()})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.ConsecutivePainAlert) != 1 {
		t.Fatalf("got %d consecutive pain alerts, want 1", len(status.ConsecutivePainAlert))
	}
	cp := status.ConsecutivePainAlert[0]
	if cp.MetricType != "pain" || cp.ConsecutiveDays != 3 || cp.LatestValue != 6 {
		t.Errorf("consecutive pain = %+v", cp)
	}
}

func TestStatusConsecutivePainBelowMinimum(t *testing.T) {
	e, s := testEngine(t)
	insertAt(t, s, "pain", 6, 0)
	insertAt(t, s, "pain", 7, 1)

	status, err := e.Status(StatusParams{Alerts: testAlerts()})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.ConsecutivePainAlert) != 0 {
		t.Errorf("got %d consecutive pain alerts, want 0 for a 2-day run", len(status.ConsecutivePainAlert))
	}
}

func TestStatusMedicationRollup(t *testing.T) {
	e, s := testEngine(t)
	taken := addMedication(t, s, "vitamin_d", models.FreqDaily, 10)
	takeDose(t, s, taken, 0, 9)
	addMedication(t, s, "ibuprofen", models.FreqTwiceDaily, 10)
	addMedication(t, s, "antihistamine", models.FreqAsNeeded, 10)

	status, err := e.Status(StatusParams{Alerts: testAlerts()})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Medications == nil {
		t.Fatal("expected a medication rollup")
	}
	r := status.Medications

	if r.ActiveCount != 3 {
		t.Errorf("ActiveCount = %d, want 3", r.ActiveCount)
	}
	if r.AdherentToday != 1 || r.NonAdherentToday != 1 || r.AsNeeded != 1 {
		t.Errorf("rollup counts = %d/%d/%d, want 1/1/1", r.AdherentToday, r.NonAdherentToday, r.AsNeeded)
	}
	if len(r.Missed) != 1 || r.Missed[0] != "ibuprofen (0/2 taken)" {
		t.Errorf("Missed = %v", r.Missed)
	}
	if r.OverallAdherence7d == nil {
		t.Error("expected an overall 7-day adherence mean")
	}
}

func TestStatusNoMedications(t *testing.T) {
	e, s := testEngine(t)
	insertAt(t, s, "weight", 82.0, 0)

	status, err := e.Status(StatusParams{Alerts: testAlerts()})
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Medications != nil {
		t.Error("rollup should be omitted when no medications are active")
	}
}
