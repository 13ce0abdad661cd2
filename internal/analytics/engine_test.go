// ABOUTME: Shared test fixtures: temp-dir sqlite store and a fixed clock.
// ABOUTME: Helpers for inserting backdated metrics at known dates.
package analytics

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/openvital/vital/internal/models"
	"github.com/openvital/vital/internal/storage"
)

// testNow is a Wednesday; its ISO week starts Monday 2026-08-10.
var testNow = time.Date(2026, 8, 12, 15, 0, 0, 0, time.UTC)

func testEngine(t *testing.T) (*Engine, storage.Store) {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return NewWithClock(s, func() time.Time { return testNow }), s
}

// insertAt logs a value for metricType at noon on today-minus-daysAgo.
func insertAt(t *testing.T, s storage.Store, metricType string, value float64, daysAgo int) {
	t.Helper()
	day := testNow.AddDate(0, 0, -daysAgo)
	m := models.NewMetric(metricType, value).
		WithTimestamp(time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC))
	if err := s.InsertMetric(m); err != nil {
		t.Fatalf("insert metric: %v", err)
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		day  time.Time
		want string
	}{
		{time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), "2026-08-10"}, // Wednesday
		{time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), "2026-08-10"}, // Monday
		{time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC), "2026-08-10"}, // Sunday
	}
	for _, tt := range tests {
		if got := dateKey(weekStart(tt.day)); got != tt.want {
			t.Errorf("weekStart(%s) = %s, want %s", dateKey(tt.day), got, tt.want)
		}
	}
}
