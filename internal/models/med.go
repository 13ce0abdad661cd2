// ABOUTME: Medication model with dosing frequency, route, and dose parsing.
// ABOUTME: Intake events are Metrics whose source is med_take and type is the med name.
package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Route is how a medication is administered.
type Route string

const (
	RouteOral        Route = "oral"
	RouteTopical     Route = "topical"
	RouteOphthalmic  Route = "ophthalmic"
	RouteInjection   Route = "injection"
	RouteInhaled     Route = "inhaled"
	RouteSublingual  Route = "sublingual"
	RouteTransdermal Route = "transdermal"
)

// ParseRoute accepts any string; unknown routes are kept verbatim
// (lowercased) so uncommon administration forms are not rejected.
func ParseRoute(s string) Route {
	return Route(strings.ToLower(strings.TrimSpace(s)))
}

// Frequency is a medication's dosing schedule. The string values are the
// storage encoding and must not change.
type Frequency string

const (
	FreqDaily           Frequency = "daily"
	FreqTwiceDaily      Frequency = "2x_daily"
	FreqThreeTimesDaily Frequency = "3x_daily"
	FreqWeekly          Frequency = "weekly"
	FreqAsNeeded        Frequency = "as_needed"
)

// ParseFrequency parses a frequency token.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(s) {
	case "daily":
		return FreqDaily, nil
	case "2x_daily":
		return FreqTwiceDaily, nil
	case "3x_daily":
		return FreqThreeTimesDaily, nil
	case "weekly":
		return FreqWeekly, nil
	case "as_needed":
		return FreqAsNeeded, nil
	}
	return "", NewParamError("frequency", s, "daily", "2x_daily", "3x_daily", "weekly", "as_needed")
}

// RequiredPerDay returns the fixed daily dose count, or nil for
// Weekly and AsNeeded schedules which have none.
func (f Frequency) RequiredPerDay() *int {
	var n int
	switch f {
	case FreqDaily:
		n = 1
	case FreqTwiceDaily:
		n = 2
	case FreqThreeTimesDaily:
		n = 3
	default:
		return nil
	}
	return &n
}

// ParsedDose is the structured form of a free-text dose spec.
type ParsedDose struct {
	Raw   string
	Value *float64
	Unit  string
}

var (
	doseFractionRe = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)\s*(.*)$`)
	doseDecimalRe  = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)\s*(.*)$`)
)

var unicodeFractions = map[rune]float64{
	'½': 0.5,
	'⅓': 1.0 / 3.0,
	'⅔': 2.0 / 3.0,
	'¼': 0.25,
	'¾': 0.75,
}

// ParseDose parses a dose string like "400mg", "1/2 tablet", "½ tablet",
// "2 drops", or "thin layer". Empty input means one unqualified dose.
func ParseDose(input string) ParsedDose {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		one := 1.0
		return ParsedDose{Value: &one, Unit: "dose"}
	}

	if d, ok := parseUnicodeFraction(trimmed); ok {
		return d
	}
	if caps := doseFractionRe.FindStringSubmatch(trimmed); caps != nil {
		num, _ := strconv.ParseFloat(caps[1], 64)
		den, _ := strconv.ParseFloat(caps[2], 64)
		if num > 0 && den > 0 {
			v := num / den
			return ParsedDose{Raw: trimmed, Value: &v, Unit: doseUnit(caps[3])}
		}
	} else if caps := doseDecimalRe.FindStringSubmatch(trimmed); caps != nil {
		v, err := strconv.ParseFloat(caps[1], 64)
		if err == nil && v > 0 {
			return ParsedDose{Raw: trimmed, Value: &v, Unit: doseUnit(caps[2])}
		}
	}

	// No numeric component recognised
	return ParsedDose{Raw: input, Unit: "application"}
}

func parseUnicodeFraction(s string) (ParsedDose, bool) {
	runes := []rune(s)
	v, ok := unicodeFractions[runes[0]]
	if !ok {
		return ParsedDose{}, false
	}
	return ParsedDose{Raw: s, Value: &v, Unit: doseUnit(string(runes[1:]))}, true
}

func doseUnit(rest string) string {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "dose"
	}
	return rest
}

// Medication is a tracked medication schedule. Its intake history lives in
// the metrics table, keyed by the medication name.
type Medication struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Dose       *string    `json:"dose,omitempty" yaml:"dose,omitempty"`
	DoseValue  *float64   `json:"dose_value,omitempty" yaml:"dose_value,omitempty"`
	DoseUnit   *string    `json:"dose_unit,omitempty" yaml:"dose_unit,omitempty"`
	Route      Route      `json:"route" yaml:"route"`
	Frequency  Frequency  `json:"frequency" yaml:"frequency"`
	Active     bool       `json:"active" yaml:"active"`
	StartedAt  time.Time  `json:"started_at" yaml:"started_at"`
	StoppedAt  *time.Time `json:"stopped_at,omitempty" yaml:"stopped_at,omitempty"`
	StopReason *string    `json:"stop_reason,omitempty" yaml:"stop_reason,omitempty"`
	Note       *string    `json:"note,omitempty" yaml:"note,omitempty"`
	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
}

// NewMedication creates an active medication with defaults.
func NewMedication(name string, frequency Frequency) *Medication {
	now := time.Now().UTC()
	return &Medication{
		ID:        uuid.New().String(),
		Name:      name,
		Route:     RouteOral,
		Frequency: frequency,
		Active:    true,
		StartedAt: now,
		CreatedAt: now,
	}
}

// WithDose attaches a dose spec, parsing out its numeric value and unit.
func (m *Medication) WithDose(dose string) *Medication {
	if dose == "" {
		return m
	}
	m.Dose = &dose
	parsed := ParseDose(dose)
	m.DoseValue = parsed.Value
	m.DoseUnit = &parsed.Unit
	return m
}

// NewDoseMetric builds the intake observation for taking this medication.
// The note records the dose (or an override), a stopped marker when the
// medication is no longer active, and any free-text note.
func (m *Medication) NewDoseMetric(doseOverride, note string, tags []string, at time.Time) *Metric {
	var parts []string
	if doseOverride != "" {
		parts = append(parts, doseOverride+" (override)")
	} else if m.Dose != nil {
		parts = append(parts, *m.Dose)
	}
	if !m.Active {
		if len(parts) > 0 {
			parts[len(parts)-1] += " (stopped)"
		} else {
			parts = append(parts, "(stopped)")
		}
	}
	if note != "" {
		parts = append(parts, note)
	}

	metric := &Metric{
		ID:         uuid.New().String(),
		Timestamp:  at.UTC(),
		Category:   CategoryMedication,
		MetricType: m.Name,
		Value:      1.0,
		Unit:       "dose",
		Tags:       tags,
		Source:     SourceMedTake,
	}
	if len(parts) > 0 {
		joined := strings.Join(parts, "; ")
		metric.Note = &joined
	}
	return metric
}
