// ABOUTME: Goal model with direction and timeframe enums.
// ABOUTME: One active goal per metric type; prior goals are soft-retired.
package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Direction is the comparison a goal makes against its target.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
	DirectionEqual Direction = "equal"
)

// ParseDirection parses a direction token.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "above":
		return DirectionAbove, nil
	case "below":
		return DirectionBelow, nil
	case "equal":
		return DirectionEqual, nil
	}
	return "", NewParamError("direction", s, "above", "below", "equal")
}

// Timeframe is the window over which a goal's current value is resolved.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// ParseTimeframe parses a timeframe token.
func ParseTimeframe(s string) (Timeframe, error) {
	switch s {
	case "daily":
		return TimeframeDaily, nil
	case "weekly":
		return TimeframeWeekly, nil
	case "monthly":
		return TimeframeMonthly, nil
	}
	return "", NewParamError("timeframe", s, "daily", "weekly", "monthly")
}

// Goal is a target for a metric type.
type Goal struct {
	ID          string    `json:"id" yaml:"id"`
	MetricType  string    `json:"metric_type" yaml:"metric_type"`
	TargetValue float64   `json:"target_value" yaml:"target_value"`
	Direction   Direction `json:"direction" yaml:"direction"`
	Timeframe   Timeframe `json:"timeframe" yaml:"timeframe"`
	Active      bool      `json:"active" yaml:"active"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// NewGoal creates an active goal.
func NewGoal(metricType string, target float64, direction Direction, timeframe Timeframe) *Goal {
	return &Goal{
		ID:          uuid.New().String(),
		MetricType:  metricType,
		TargetValue: target,
		Direction:   direction,
		Timeframe:   timeframe,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsMet checks a value against the target. Equal uses exact
// floating-point equality within machine epsilon.
func (g *Goal) IsMet(value float64) bool {
	switch g.Direction {
	case DirectionAbove:
		return value >= g.TargetValue
	case DirectionBelow:
		return value <= g.TargetValue
	default:
		return math.Abs(value-g.TargetValue) < 2.220446049250313e-16
	}
}
