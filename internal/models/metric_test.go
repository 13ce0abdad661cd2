// ABOUTME: Tests for metric categories, default units, and cumulative types.
// ABOUTME: Validates the constructor defaults and dose detection.
package models

import (
	"testing"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		metricType string
		want       Category
	}{
		{"weight", CategoryBody},
		{"sleep_hours", CategorySleep},
		{"water", CategoryNutrition},
		{"pain", CategoryPain},
		{"screen_time", CategoryHabit},
		{"hrv", CategoryCustom},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.metricType); got != tt.want {
			t.Errorf("CategoryOf(%s) = %s, want %s", tt.metricType, got, tt.want)
		}
	}
}

func TestDefaultUnit(t *testing.T) {
	tests := []struct {
		metricType string
		want       string
	}{
		{"weight", "kg"},
		{"water", "ml"},
		{"pain", "0-10"},
		{"sleep_quality", "1-5"},
		{"made_up_metric", ""},
	}
	for _, tt := range tests {
		if got := DefaultUnit(tt.metricType); got != tt.want {
			t.Errorf("DefaultUnit(%s) = %q, want %q", tt.metricType, got, tt.want)
		}
	}
}

func TestIsCumulative(t *testing.T) {
	for _, cumulative := range []string{"water", "steps", "calories_in", "calories_burned", "standing_breaks"} {
		if !IsCumulative(cumulative) {
			t.Errorf("expected %s to be cumulative", cumulative)
		}
	}
	for _, snapshot := range []string{"weight", "pain", "sleep_hours"} {
		if IsCumulative(snapshot) {
			t.Errorf("expected %s to be a snapshot type", snapshot)
		}
	}
}

func TestNewMetric(t *testing.T) {
	m := NewMetric("weight", 82.5)

	if m.ID == "" {
		t.Error("expected UUID to be set")
	}
	if m.Value != 82.5 {
		t.Errorf("Value = %g, want 82.5", m.Value)
	}
	if m.Unit != "kg" {
		t.Errorf("Unit = %s, want kg", m.Unit)
	}
	if m.Category != CategoryBody {
		t.Errorf("Category = %s, want body", m.Category)
	}
	if m.Source != SourceManual {
		t.Errorf("Source = %s, want manual", m.Source)
	}
	if m.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
	if m.IsDose() {
		t.Error("manual metric should not be a dose")
	}
}
