// ABOUTME: Calendar-bucketed trend analysis with linear regression.
// ABOUTME: Projects a clamped 30-day-ahead estimate from the fitted slope.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/openvital/vital/internal/models"
)

// Period is the calendar bucket size for trend analysis.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod parses a period token.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "daily":
		return PeriodDaily, nil
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	}
	return "", models.NewParamError("period", s, "daily", "weekly", "monthly")
}

// rateUnit is the singular per-period unit string for rates.
func (p Period) rateUnit() string {
	switch p {
	case PeriodDaily:
		return "per day"
	case PeriodMonthly:
		return "per month"
	default:
		return "per week"
	}
}

// periodsIn30Days is the number of buckets a 30-day projection spans.
func (p Period) periodsIn30Days() float64 {
	switch p {
	case PeriodDaily:
		return 30
	case PeriodMonthly:
		return 1
	default:
		return 30.0 / 7.0
	}
}

// PeriodData summarizes one calendar bucket of a metric's history.
type PeriodData struct {
	Label string  `json:"label"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// TrendSummary is the fitted direction, rate, and bounded projection.
type TrendSummary struct {
	Direction    string   `json:"direction"`
	Rate         float64  `json:"rate"`
	RateUnit     string   `json:"rate_unit"`
	Projected30d *float64 `json:"projected_30d,omitempty"`
}

// TrendResult is the full trend output for one metric type.
type TrendResult struct {
	MetricType string       `json:"type"`
	Period     Period       `json:"period"`
	Data       []PeriodData `json:"data"`
	Trend      TrendSummary `json:"trend"`
}

// defaultTrendBuckets is how many trailing buckets are analyzed when the
// caller does not say.
const defaultTrendBuckets = 12

// ComputeTrend buckets a metric's full history into calendar periods,
// fits a regression over the trailing lastN bucket averages, and projects
// 30 days ahead. lastN <= 0 selects the default of 12.
func (e *Engine) ComputeTrend(metricType string, period Period, lastN int) (*TrendResult, error) {
	entries, err := e.store.QueryByTypeAsc(metricType, 0)
	if err != nil {
		return nil, err
	}

	if lastN <= 0 {
		lastN = defaultTrendBuckets
	}

	result := &TrendResult{
		MetricType: metricType,
		Period:     period,
		Data:       []PeriodData{},
		Trend: TrendSummary{
			Direction: "stable",
			Rate:      0,
			RateUnit:  period.rateUnit(),
		},
	}
	if len(entries) == 0 {
		return result, nil
	}

	buckets := make(map[string][]float64)
	for _, entry := range entries {
		key := bucketKey(entry.Timestamp, period)
		buckets[key] = append(buckets[key], entry.Value)
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	if len(labels) > lastN {
		labels = labels[len(labels)-lastN:]
	}

	for _, label := range labels {
		values := buckets[label]
		sum := 0.0
		min := math.Inf(1)
		max := math.Inf(-1)
		for _, v := range values {
			sum += v
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
		result.Data = append(result.Data, PeriodData{
			Label: label,
			Avg:   sum / float64(len(values)),
			Min:   min,
			Max:   max,
			Count: len(values),
		})
	}

	result.Trend = fitTrend(result.Data, period)
	return result, nil
}

// bucketKey renders the calendar bucket label for a timestamp:
// daily YYYY-MM-DD, weekly ISO YYYY-Www, monthly YYYY-MM.
func bucketKey(t time.Time, period Period) string {
	u := t.UTC()
	switch period {
	case PeriodDaily:
		return u.Format("2006-01-02")
	case PeriodWeekly:
		year, week := u.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default:
		return u.Format("2006-01")
	}
}

// fitTrend runs ordinary least squares over bucket averages against
// 0-based bucket index and classifies the slope.
func fitTrend(data []PeriodData, period Period) TrendSummary {
	summary := TrendSummary{
		Direction: "stable",
		Rate:      0,
		RateUnit:  period.rateUnit(),
	}

	if len(data) < 2 {
		if len(data) == 1 {
			projected := round1(data[0].Avg)
			summary.Projected30d = &projected
		}
		return summary
	}

	n := float64(len(data))
	var sumX, sumY, sumXY, sumXX float64
	for i, d := range data {
		x := float64(i)
		sumX += x
		sumY += d.Avg
		sumXY += x * d.Avg
		sumXX += x * x
	}
	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)

	switch {
	case slope < -0.01:
		summary.Direction = "decreasing"
	case slope > 0.01:
		summary.Direction = "increasing"
	}
	summary.Rate = round1(slope)

	lastAvg := data[len(data)-1].Avg
	projected := lastAvg + slope*period.periodsIn30Days()

	// Keep the projection within ±50% of the last observed average; a
	// steep short-term slope extrapolated 30 days out is not a forecast.
	lo, hi := lastAvg*0.5, lastAvg*1.5
	if lastAvg >= 0 {
		lo = math.Max(0, lo)
	} else {
		lo, hi = hi, lo
	}
	projected = math.Min(math.Max(projected, lo), hi)
	projected = round1(projected)
	summary.Projected30d = &projected

	return summary
}
