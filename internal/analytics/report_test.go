// ABOUTME: Tests for the range report: per-type aggregates, overall
// ABOUTME: counts, and range filtering.
package analytics

import (
	"testing"
)

func TestReportAggregates(t *testing.T) {
	e, s := testEngine(t)
	insertAt(t, s, "weight", 82.0, 0)
	insertAt(t, s, "weight", 83.0, 2)
	insertAt(t, s, "weight", 84.0, 4)
	insertAt(t, s, "sleep", 7.5, 0)
	// outside the range
	insertAt(t, s, "weight", 90.0, 10)

	from := testNow.AddDate(0, 0, -6)
	report, err := e.Report(from, testNow)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if report.TotalEntries != 4 {
		t.Errorf("TotalEntries = %d, want 4", report.TotalEntries)
	}
	if report.DaysWithEntries != 3 {
		t.Errorf("DaysWithEntries = %d, want 3", report.DaysWithEntries)
	}
	if len(report.Metrics) != 2 {
		t.Fatalf("got %d metric summaries, want 2", len(report.Metrics))
	}

	// Sorted by type: sleep before weight.
	sleep := report.Metrics[0]
	if sleep.MetricType != "sleep" || sleep.Count != 1 || sleep.Avg != 7.5 {
		t.Errorf("sleep summary = %+v", sleep)
	}

	weight := report.Metrics[1]
	if weight.MetricType != "weight" {
		t.Fatalf("second summary = %q, want weight", weight.MetricType)
	}
	if weight.Count != 3 {
		t.Errorf("weight count = %d, want 3", weight.Count)
	}
	if weight.Avg != 83.0 {
		t.Errorf("weight avg = %g, want 83", weight.Avg)
	}
	if weight.Min != 82.0 || weight.Max != 84.0 {
		t.Errorf("weight min/max = %g/%g, want 82/84", weight.Min, weight.Max)
	}
	if weight.Unit != "kg" {
		t.Errorf("weight unit = %q, want kg", weight.Unit)
	}
}

func TestReportEmptyRange(t *testing.T) {
	e, _ := testEngine(t)

	from := testNow.AddDate(0, 0, -6)
	report, err := e.Report(from, testNow)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.TotalEntries != 0 || report.DaysWithEntries != 0 {
		t.Errorf("counts = %d/%d, want 0/0", report.TotalEntries, report.DaysWithEntries)
	}
	if report.Metrics == nil || len(report.Metrics) != 0 {
		t.Errorf("Metrics = %v, want empty non-nil slice", report.Metrics)
	}
	if report.From != "2026-08-06" || report.To != "2026-08-12" {
		t.Errorf("range = %s..%s", report.From, report.To)
	}
}
