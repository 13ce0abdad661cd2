// ABOUTME: Human-readable formatting helpers for metric entries.
// ABOUTME: Converts to the configured unit system and renders relative times.
package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/openvital/vital/internal/config"
	"github.com/openvital/vital/internal/models"
	"github.com/openvital/vital/internal/units"
)

// formatValueWithUnit renders a value with its unit, collapsing scale
// units like "0-10" into "7/10".
func formatValueWithUnit(val float64, unit string) string {
	switch unit {
	case "0-10", "1-10":
		return fmt.Sprintf("%g/10", val)
	case "1-5":
		return fmt.Sprintf("%g/5", val)
	case "":
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%g %s", val, unit)
	}
}

// formatMetric pretty-prints one entry in the configured unit system.
func formatMetric(m *models.Metric, u config.Units) string {
	val, unit := units.ToDisplay(m.Value, m.MetricType, u)
	line := fmt.Sprintf("%s | %s = %s",
		m.Timestamp.Format("2006-01-02 15:04"),
		m.MetricType,
		formatValueWithUnit(val, unit))
	if m.Note != nil {
		line += "  # " + *m.Note
	}
	if len(m.Tags) > 0 {
		line += "  [" + strings.Join(m.Tags, ", ") + "]"
	}
	return line
}

// printLogged renders the post-write confirmation line.
func printLogged(m *models.Metric) {
	color.Green("✓ Logged %s", m.MetricType)
	val, unit := units.ToDisplay(m.Value, m.MetricType, cfg.Units)
	fmt.Printf("  %s %s %s\n",
		color.New(color.Faint).Sprint(m.ID[:8]),
		formatValueWithUnit(val, unit),
		color.New(color.Faint).Sprint(humanize.Time(m.Timestamp)))
}
