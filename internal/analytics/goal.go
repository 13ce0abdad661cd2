// ABOUTME: Goal evaluation: resolves a current value per timeframe and checks
// ABOUTME: it against the target. Cumulative types sum, others take the latest.
package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/openvital/vital/internal/models"
)

// GoalStatus is the evaluated state of one active goal.
type GoalStatus struct {
	ID           string   `json:"id"`
	MetricType   string   `json:"metric_type"`
	TargetValue  float64  `json:"target_value"`
	Direction    string   `json:"direction"`
	Timeframe    string   `json:"timeframe"`
	CurrentValue *float64 `json:"current_value,omitempty"`
	IsMet        bool     `json:"is_met"`
	Progress     *string  `json:"progress,omitempty"`
}

// GoalStatus evaluates every active goal, or just the one for metricType
// when it is non-empty. Goals with no observations in their timeframe get
// a nil current value and count as not met.
func (e *Engine) GoalStatus(metricType string) ([]*GoalStatus, error) {
	goals, err := e.store.ListGoals(true)
	if err != nil {
		return nil, err
	}
	today := e.today()

	var results []*GoalStatus
	for _, goal := range goals {
		if metricType != "" && goal.MetricType != metricType {
			continue
		}
		current, err := e.currentValue(goal, today)
		if err != nil {
			return nil, err
		}
		status := &GoalStatus{
			ID:          goal.ID,
			MetricType:  goal.MetricType,
			TargetValue: goal.TargetValue,
			Direction:   string(goal.Direction),
			Timeframe:   string(goal.Timeframe),
		}
		if current != nil {
			status.CurrentValue = current
			status.IsMet = goal.IsMet(*current)
			progress := formatProgress(goal, *current)
			status.Progress = &progress
		}
		results = append(results, status)
	}
	return results, nil
}

// isMedicationType reports whether a metric type holds exclusively
// medication entries. A name collision with any regular metric makes the
// type non-medication.
func (e *Engine) isMedicationType(metricType string) (bool, error) {
	entries, err := e.store.QueryByType(metricType, 20)
	if err != nil {
		return false, err
	}
	if len(entries) == 0 {
		return false, nil
	}
	for _, m := range entries {
		if m.Category != models.CategoryMedication {
			return false, nil
		}
	}
	return true, nil
}

func (e *Engine) currentValue(goal *models.Goal, today time.Time) (*float64, error) {
	isMed, err := e.isMedicationType(goal.MetricType)
	if err != nil {
		return nil, err
	}
	cumulative := models.IsCumulative(goal.MetricType) || isMed

	var entries []*models.Metric
	switch goal.Timeframe {
	case models.TimeframeDaily:
		entries, err = e.store.QueryByDate(today)
	case models.TimeframeWeekly:
		entries, err = e.store.QueryByDateRange(weekStart(today), today)
	case models.TimeframeMonthly:
		// Most-recent observation, regardless of calendar month.
		latest, lerr := e.store.QueryByType(goal.MetricType, 20)
		if lerr != nil {
			return nil, lerr
		}
		for _, m := range latest {
			if matchesGoal(m, goal.MetricType, isMed) {
				v := m.Value
				return &v, nil
			}
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown timeframe %q", goal.Timeframe)
	}
	if err != nil {
		return nil, err
	}

	var matched []*models.Metric
	for _, m := range entries {
		if matchesGoal(m, goal.MetricType, isMed) {
			matched = append(matched, m)
		}
	}
	if len(matched) == 0 {
		return nil, nil
	}

	if cumulative {
		sum := 0.0
		for _, m := range matched {
			sum += m.Value
		}
		return &sum, nil
	}
	v := matched[len(matched)-1].Value
	return &v, nil
}

func matchesGoal(m *models.Metric, metricType string, isMed bool) bool {
	if m.MetricType != metricType {
		return false
	}
	if isMed {
		return m.Category == models.CategoryMedication
	}
	return m.Category != models.CategoryMedication
}

func formatProgress(goal *models.Goal, current float64) string {
	switch goal.Direction {
	case models.DirectionBelow:
		if current <= goal.TargetValue {
			return fmt.Sprintf("at target (%g <= %g)", current, goal.TargetValue)
		}
		return fmt.Sprintf("%g to go (%g → %g)", current-goal.TargetValue, current, goal.TargetValue)
	case models.DirectionAbove:
		if current >= goal.TargetValue {
			return fmt.Sprintf("target met (%g >= %g)", current, goal.TargetValue)
		}
		return fmt.Sprintf("%g remaining (%g/%g)", goal.TargetValue-current, current, goal.TargetValue)
	default:
		if math.Abs(current-goal.TargetValue) < 0.01 {
			return fmt.Sprintf("at target (%g)", current)
		}
		return fmt.Sprintf("current: %g, target: %g", current, goal.TargetValue)
	}
}
