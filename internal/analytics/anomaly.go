// ABOUTME: IQR-band anomaly detection over trailing baselines.
// ABOUTME: Flags same-day observations outside the threshold-widened quartile band.
package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openvital/vital/internal/models"
)

// minBaselinePoints is the minimum history needed for a meaningful baseline.
const minBaselinePoints = 7

// DetectAnomalies scans one metric type (or all, when metricType is "")
// for today's observations falling outside an IQR band built from the last
// baselineDays of history.
func (e *Engine) DetectAnomalies(metricType string, baselineDays int, threshold models.Threshold) (*models.AnomalyResult, error) {
	today := e.today()
	baselineStart := today.AddDate(0, 0, -baselineDays)

	var typesToScan []string
	if metricType != "" {
		typesToScan = []string{metricType}
	} else {
		var err error
		typesToScan, err = e.store.DistinctMetricTypes()
		if err != nil {
			return nil, err
		}
	}

	anomalies := []models.Anomaly{}
	scannedTypes := []string{}
	cleanTypes := []string{}

	for _, metric := range typesToScan {
		entries, err := e.store.QueryAll(metric, baselineStart, today)
		if err != nil {
			return nil, err
		}
		if len(entries) < minBaselinePoints {
			continue
		}

		scannedTypes = append(scannedTypes, metric)

		// Baseline uses strictly pre-today values.
		var baselineValues []float64
		var todayEntries []*models.Metric
		for _, entry := range entries {
			d := dateOf(entry.Timestamp)
			switch {
			case d.Equal(today):
				todayEntries = append(todayEntries, entry)
			case !d.Before(baselineStart):
				baselineValues = append(baselineValues, entry.Value)
			}
		}
		if len(baselineValues) < minBaselinePoints {
			continue
		}

		baseline := ComputeBaseline(baselineValues)
		factor := threshold.Factor()
		lower := baseline.Q1 - factor*baseline.IQR
		upper := baseline.Q3 + factor*baseline.IQR

		if len(todayEntries) == 0 {
			// Nothing logged today: neither anomalous nor clean.
			continue
		}

		foundAnomaly := false
		for _, entry := range todayEntries {
			if entry.Value >= lower && entry.Value <= upper {
				continue
			}
			foundAnomaly = true
			deviation := "below"
			if entry.Value > upper {
				deviation = "above"
			}
			anomalies = append(anomalies, models.Anomaly{
				MetricType: metric,
				Value:      entry.Value,
				Timestamp:  entry.Timestamp,
				Baseline:   baseline,
				Bounds:     models.Bounds{Lower: lower, Upper: upper},
				Deviation:  deviation,
				Severity:   severity(entry.Value, baseline, deviation),
				Summary: fmt.Sprintf("%s %.1f is %s your normal range (%.1f-%.1f)",
					metric, entry.Value, deviation, lower, upper),
			})
		}
		if !foundAnomaly {
			cleanTypes = append(cleanTypes, metric)
		}
	}

	return &models.AnomalyResult{
		Period: models.AnomalyPeriod{
			BaselineStart: dateKey(baselineStart),
			BaselineEnd:   dateKey(today),
			Days:          baselineDays,
		},
		Threshold:    threshold,
		Anomalies:    anomalies,
		ScannedTypes: scannedTypes,
		CleanTypes:   cleanTypes,
		Summary:      anomalySummary(anomalies, scannedTypes),
	}, nil
}

// severity grades distance from the quartile boundary in IQR units,
// clamped to a small normalizer so flat baselines do not divide by zero.
func severity(value float64, baseline models.Baseline, deviation string) models.Severity {
	normalizer := baseline.IQR
	if normalizer < 0.01 {
		normalizer = 0.01
	}
	var distance float64
	if deviation == "above" {
		distance = (value - baseline.Q3) / normalizer
	} else {
		distance = (baseline.Q1 - value) / normalizer
	}

	switch {
	case distance > 2.0:
		return models.SeverityAlert
	case distance > 1.5:
		return models.SeverityWarning
	default:
		return models.SeverityInfo
	}
}

func anomalySummary(anomalies []models.Anomaly, scannedTypes []string) string {
	if len(anomalies) == 0 {
		if len(scannedTypes) == 0 {
			return "No metrics with sufficient data for anomaly detection."
		}
		return fmt.Sprintf("No anomalies detected across %d metric type(s).", len(scannedTypes))
	}

	seen := make(map[string]bool)
	var affected []string
	for _, a := range anomalies {
		if !seen[a.MetricType] {
			seen[a.MetricType] = true
			affected = append(affected, a.MetricType)
		}
	}
	sort.Strings(affected)

	noun := "anomalies"
	if len(anomalies) == 1 {
		noun = "anomaly"
	}
	return fmt.Sprintf("%d %s detected across %d metric type(s). Affected: %s.",
		len(anomalies), noun, len(scannedTypes), strings.Join(affected, ", "))
}
