// ABOUTME: Tests for unit conversion at the display and input edges.
// ABOUTME: Covers both unit systems and the rate-conversion special case.
package units

import (
	"math"
	"testing"

	"github.com/openvital/vital/internal/config"
)

func TestToDisplayMetricPassthrough(t *testing.T) {
	value, unit := ToDisplay(82.5, "weight", config.MetricUnits())
	if value != 82.5 || unit != "kg" {
		t.Errorf("got %g %s, want 82.5 kg", value, unit)
	}
}

func TestToDisplayImperial(t *testing.T) {
	tests := []struct {
		metricType string
		stored     float64
		want       float64
		wantUnit   string
	}{
		{"weight", 82.5, 181.9, "lbs"},
		{"waist", 86.0, 33.9, "in"},
		{"water", 500, 16.9, "fl oz"},
		{"temperature", 37.0, 98.6, "°F"},
		{"sleep", 7.5, 7.5, "hours"}, // no imperial form
	}
	imperial := config.ImperialUnits()
	for _, tt := range tests {
		value, unit := ToDisplay(tt.stored, tt.metricType, imperial)
		if value != tt.want || unit != tt.wantUnit {
			t.Errorf("ToDisplay(%g, %s) = %g %s, want %g %s",
				tt.stored, tt.metricType, value, unit, tt.want, tt.wantUnit)
		}
	}
}

func TestFromInputRoundTrip(t *testing.T) {
	imperial := config.ImperialUnits()
	stored := FromInput(180.0, "weight", imperial)
	display, _ := ToDisplay(stored, "weight", imperial)
	if display != 180.0 {
		t.Errorf("round trip = %g, want 180", display)
	}
}

func TestFromInputTemperature(t *testing.T) {
	stored := FromInput(98.6, "temperature", config.ImperialUnits())
	if math.Abs(stored-37.0) > 1e-9 {
		t.Errorf("98.6°F stored as %g, want 37", stored)
	}
}

func TestToDisplayRateSkipsOffset(t *testing.T) {
	// A change of 1°C per week is 1.8°F per week, not 33.8.
	if got := ToDisplayRate(1.0, "temperature", config.ImperialUnits()); got != 1.8 {
		t.Errorf("temperature rate = %g, want 1.8", got)
	}
	if got := ToDisplayRate(-0.5, "weight", config.ImperialUnits()); got != -1.1 {
		t.Errorf("weight rate = %g, want -1.1", got)
	}
}
