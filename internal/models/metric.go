// ABOUTME: Metric model, categories, default units, and cumulative classification.
// ABOUTME: A metric is one immutable timestamped observation of a health value.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups metric types for display and filtering.
type Category string

const (
	CategoryBody       Category = "body"
	CategoryExercise   Category = "exercise"
	CategorySleep      Category = "sleep"
	CategoryNutrition  Category = "nutrition"
	CategoryPain       Category = "pain"
	CategoryHabit      Category = "habit"
	CategoryMedication Category = "medication"
	CategoryCustom     Category = "custom"
)

// CategoryOf derives the category from a metric type name.
func CategoryOf(metricType string) Category {
	switch metricType {
	case "weight", "body_fat", "waist":
		return CategoryBody
	case "cardio", "strength", "calories_burned":
		return CategoryExercise
	case "sleep_hours", "sleep_quality", "bed_time", "wake_time":
		return CategorySleep
	case "calories", "calories_in", "calories_out", "water":
		return CategoryNutrition
	case "pain", "soreness":
		return CategoryPain
	case "standing_breaks", "screen_time":
		return CategoryHabit
	default:
		return CategoryCustom
	}
}

// DefaultUnit returns the storage unit for a known metric type, or "".
func DefaultUnit(metricType string) string {
	switch metricType {
	case "weight":
		return "kg"
	case "body_fat":
		return "%"
	case "waist":
		return "cm"
	case "cardio", "strength":
		return "min"
	case "calories", "calories_out", "calories_burned", "calories_in":
		return "kcal"
	case "sleep_hours", "sleep":
		return "hours"
	case "sleep_quality":
		return "1-5"
	case "bed_time", "wake_time":
		return "HH:MM"
	case "water":
		return "ml"
	case "steps":
		return "steps"
	case "mood":
		return "1-10"
	case "heart_rate":
		return "bpm"
	case "bp_systolic", "bp_diastolic":
		return "mmHg"
	case "pain", "soreness":
		return "0-10"
	case "standing_breaks":
		return "count"
	case "screen_time":
		return "hours"
	default:
		return ""
	}
}

// IsCumulative reports whether a metric type accumulates over a day
// (sum values) rather than being a snapshot (use latest value).
func IsCumulative(metricType string) bool {
	switch metricType {
	case "water", "steps", "calories_in", "calories_burned", "standing_breaks":
		return true
	}
	return false
}

// Source markers for how an observation entered the store.
const (
	SourceManual  = "manual"
	SourceImport  = "import"
	SourceMedTake = "med_take"
)

// Metric is a single health observation. Immutable once stored.
type Metric struct {
	ID         string    `json:"id" yaml:"id"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Category   Category  `json:"category" yaml:"category"`
	MetricType string    `json:"type" yaml:"type"`
	Value      float64   `json:"value" yaml:"value"`
	Unit       string    `json:"unit" yaml:"unit"`
	Note       *string   `json:"note,omitempty" yaml:"note,omitempty"`
	Tags       []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Source     string    `json:"source" yaml:"source"`
}

// NewMetric creates a metric with a fresh UUID, current UTC timestamp,
// derived category, and the type's default unit.
func NewMetric(metricType string, value float64) *Metric {
	return &Metric{
		ID:         uuid.New().String(),
		Timestamp:  time.Now().UTC(),
		Category:   CategoryOf(metricType),
		MetricType: metricType,
		Value:      value,
		Unit:       DefaultUnit(metricType),
		Source:     SourceManual,
	}
}

// WithTimestamp sets a custom observation timestamp.
func (m *Metric) WithTimestamp(t time.Time) *Metric {
	m.Timestamp = t.UTC()
	return m
}

// WithNote sets a note on the metric.
func (m *Metric) WithNote(note string) *Metric {
	m.Note = &note
	return m
}

// IsDose reports whether this metric records a medication intake event.
func (m *Metric) IsDose() bool {
	return m.Source == SourceMedTake
}
