// ABOUTME: Range report: per-type count/avg/min/max over an inclusive
// ABOUTME: date range, plus overall entry and day counts.
package analytics

import (
	"sort"
	"time"
)

// ReportResult summarizes every metric type observed in a date range.
type ReportResult struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	DaysWithEntries int             `json:"days_with_entries"`
	TotalEntries    int             `json:"total_entries"`
	Metrics         []MetricSummary `json:"metrics"`
}

// MetricSummary aggregates one metric type within the report range.
type MetricSummary struct {
	MetricType string  `json:"type"`
	Count      int     `json:"count"`
	Avg        float64 `json:"avg"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Unit       string  `json:"unit"`
}

// Report generates a summary over [from, to] inclusive.
func (e *Engine) Report(from, to time.Time) (*ReportResult, error) {
	entries, err := e.store.QueryByDateRange(from, to)
	if err != nil {
		return nil, err
	}

	result := &ReportResult{
		From:    dateKey(from),
		To:      dateKey(to),
		Metrics: []MetricSummary{},
	}
	if len(entries) == 0 {
		return result, nil
	}

	days := map[string]struct{}{}
	grouped := map[string]*MetricSummary{}
	for _, m := range entries {
		days[dateKey(m.Timestamp)] = struct{}{}
		s, ok := grouped[m.MetricType]
		if !ok {
			s = &MetricSummary{
				MetricType: m.MetricType,
				Min:        m.Value,
				Max:        m.Value,
				Unit:       m.Unit,
			}
			grouped[m.MetricType] = s
		}
		s.Count++
		s.Avg += m.Value // running sum until the final divide
		if m.Value < s.Min {
			s.Min = m.Value
		}
		if m.Value > s.Max {
			s.Max = m.Value
		}
	}

	types := make([]string, 0, len(grouped))
	for t := range grouped {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		s := grouped[t]
		s.Avg /= float64(s.Count)
		result.Metrics = append(result.Metrics, *s)
	}

	result.DaysWithEntries = len(days)
	result.TotalEntries = len(entries)
	return result, nil
}
