// ABOUTME: Anomaly detection records: threshold, severity, baseline, bounds.
// ABOUTME: All derived per query, never persisted.
package models

import (
	"time"
)

// Severity grades how far outside the baseline band a value landed.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityAlert   Severity = "alert"
)

// Threshold selects the IQR multiplier for the anomaly band.
type Threshold string

const (
	ThresholdRelaxed  Threshold = "relaxed"
	ThresholdModerate Threshold = "moderate"
	ThresholdStrict   Threshold = "strict"
)

// ParseThreshold parses a threshold token.
func ParseThreshold(s string) (Threshold, error) {
	switch s {
	case "relaxed":
		return ThresholdRelaxed, nil
	case "moderate":
		return ThresholdModerate, nil
	case "strict":
		return ThresholdStrict, nil
	}
	return "", NewParamError("threshold", s, "relaxed", "moderate", "strict")
}

// Factor is the IQR multiplier used to widen the baseline band.
func (t Threshold) Factor() float64 {
	switch t {
	case ThresholdRelaxed:
		return 2.0
	case ThresholdStrict:
		return 1.0
	default:
		return 1.5
	}
}

// Baseline holds order statistics over a metric's historical values.
type Baseline struct {
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	IQR    float64 `json:"iqr"`
}

// Bounds is the acceptance band derived from a baseline and threshold.
type Bounds struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Anomaly is one same-day observation outside its baseline band.
type Anomaly struct {
	MetricType string    `json:"metric_type"`
	Value      float64   `json:"value"`
	Timestamp  time.Time `json:"timestamp"`
	Baseline   Baseline  `json:"baseline"`
	Bounds     Bounds    `json:"bounds"`
	Deviation  string    `json:"deviation"` // "above" or "below"
	Severity   Severity  `json:"severity"`
	Summary    string    `json:"summary"`
}

// AnomalyPeriod describes the baseline window that was scanned.
type AnomalyPeriod struct {
	BaselineStart string `json:"baseline_start"`
	BaselineEnd   string `json:"baseline_end"`
	Days          int    `json:"days"`
}

// AnomalyResult is the full detection output for one scan.
type AnomalyResult struct {
	Period       AnomalyPeriod `json:"period"`
	Threshold    Threshold     `json:"threshold"`
	Anomalies    []Anomaly     `json:"anomalies"`
	ScannedTypes []string      `json:"scanned_types"`
	CleanTypes   []string      `json:"clean_types"`
	Summary      string        `json:"summary"`
}
