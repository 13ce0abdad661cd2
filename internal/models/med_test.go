// ABOUTME: Tests for dose parsing, frequency schedules, and intake metrics.
// ABOUTME: Covers decimal, fraction, unicode, and free-text dose specs.
package models

import (
	"testing"
	"time"
)

func TestParseDose(t *testing.T) {
	tests := []struct {
		input     string
		wantValue float64
		wantUnit  string
	}{
		{"400mg", 400, "mg"},
		{"2.5 ml", 2.5, "ml"},
		{"1/2 tablet", 0.5, "tablet"},
		{"½ tablet", 0.5, "tablet"},
		{"¾", 0.75, "dose"},
		{"2 drops", 2, "drops"},
		{"", 1, "dose"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseDose(tt.input)
			if got.Value == nil {
				t.Fatalf("ParseDose(%q).Value = nil, want %g", tt.input, tt.wantValue)
			}
			if *got.Value != tt.wantValue {
				t.Errorf("ParseDose(%q).Value = %g, want %g", tt.input, *got.Value, tt.wantValue)
			}
			if got.Unit != tt.wantUnit {
				t.Errorf("ParseDose(%q).Unit = %q, want %q", tt.input, got.Unit, tt.wantUnit)
			}
		})
	}
}

func TestParseDoseFreeText(t *testing.T) {
	got := ParseDose("thin layer")
	if got.Value != nil {
		t.Errorf("expected nil value for free-text dose, got %g", *got.Value)
	}
	if got.Unit != "application" {
		t.Errorf("Unit = %q, want application", got.Unit)
	}
}

func TestParseFrequency(t *testing.T) {
	valid := map[string]Frequency{
		"daily":     FreqDaily,
		"2x_daily":  FreqTwiceDaily,
		"3x_daily":  FreqThreeTimesDaily,
		"weekly":    FreqWeekly,
		"as_needed": FreqAsNeeded,
	}
	for input, want := range valid {
		got, err := ParseFrequency(input)
		if err != nil {
			t.Errorf("ParseFrequency(%q) error: %v", input, err)
		}
		if got != want {
			t.Errorf("ParseFrequency(%q) = %s, want %s", input, got, want)
		}
	}

	if _, err := ParseFrequency("hourly"); err == nil {
		t.Error("expected error for unknown frequency")
	}
}

func TestRequiredPerDay(t *testing.T) {
	two := FreqTwiceDaily.RequiredPerDay()
	if two == nil || *two != 2 {
		t.Errorf("2x_daily required = %v, want 2", two)
	}
	if FreqWeekly.RequiredPerDay() != nil {
		t.Error("weekly should have no fixed daily requirement")
	}
	if FreqAsNeeded.RequiredPerDay() != nil {
		t.Error("as_needed should have no fixed daily requirement")
	}
}

func TestNewDoseMetric(t *testing.T) {
	med := NewMedication("ibuprofen", FreqTwiceDaily).WithDose("400mg")
	at := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)

	m := med.NewDoseMetric("", "", nil, at)
	if m.MetricType != "ibuprofen" {
		t.Errorf("MetricType = %s, want ibuprofen", m.MetricType)
	}
	if !m.IsDose() {
		t.Error("expected dose metric source marker")
	}
	if m.Category != CategoryMedication {
		t.Errorf("Category = %s, want medication", m.Category)
	}
	if m.Value != 1.0 {
		t.Errorf("Value = %g, want 1", m.Value)
	}
	if m.Note == nil || *m.Note != "400mg" {
		t.Errorf("Note = %v, want 400mg", m.Note)
	}
}

func TestNewDoseMetricStoppedAndOverride(t *testing.T) {
	med := NewMedication("ibuprofen", FreqDaily).WithDose("400mg")
	med.Active = false

	m := med.NewDoseMetric("200mg", "with food", nil, time.Now())
	want := "200mg (override) (stopped); with food"
	if m.Note == nil || *m.Note != want {
		t.Errorf("Note = %v, want %q", m.Note, want)
	}
}
