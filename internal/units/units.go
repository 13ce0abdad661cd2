// ABOUTME: Unit conversion between stored metric values and display units.
// ABOUTME: Storage is always metric; conversion happens only at the edges.
package units

import (
	"math"

	"github.com/openvital/vital/internal/config"
	"github.com/openvital/vital/internal/models"
)

const (
	kgToLbs  = 2.20462
	cmToIn   = 2.54
	cmToFt   = 30.48
	mlToFlOz = 29.5735
)

// ToDisplay converts a stored metric value to its display value and unit
// for the active unit system.
func ToDisplay(value float64, metricType string, u config.Units) (float64, string) {
	if !u.IsImperial() {
		return value, models.DefaultUnit(metricType)
	}
	switch metricType {
	case "weight":
		return round1(value * kgToLbs), "lbs"
	case "waist":
		return round1(value / cmToIn), "in"
	case "height":
		return round1(value / cmToFt), "ft"
	case "water":
		return round1(value / mlToFlOz), "fl oz"
	case "temperature":
		return round1(value*1.8 + 32.0), "°F"
	default:
		return value, models.DefaultUnit(metricType)
	}
}

// DisplayUnit returns the unit string for a metric type in the active
// unit system.
func DisplayUnit(metricType string, u config.Units) string {
	_, unit := ToDisplay(0, metricType, u)
	return unit
}

// ToDisplayRate converts a metric-space rate (change per period) to the
// display unit system. Temperature rates scale without the offset.
func ToDisplayRate(rate float64, metricType string, u config.Units) float64 {
	if !u.IsImperial() {
		return rate
	}
	switch metricType {
	case "weight":
		return round1(rate * kgToLbs)
	case "waist":
		return round1(rate / cmToIn)
	case "height":
		return round1(rate / cmToFt)
	case "water":
		return round1(rate / mlToFlOz)
	case "temperature":
		return round1(rate * 1.8)
	default:
		return rate
	}
}

// FromInput converts a user-entered value in their configured unit system
// to metric for storage.
func FromInput(value float64, metricType string, u config.Units) float64 {
	if !u.IsImperial() {
		return value
	}
	switch metricType {
	case "weight":
		return value / kgToLbs
	case "waist":
		return value * cmToIn
	case "height":
		return value * cmToFt
	case "water":
		return value * mlToFlOz
	case "temperature":
		return (value - 32.0) / 1.8
	default:
		return value
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
