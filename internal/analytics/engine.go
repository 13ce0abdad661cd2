// ABOUTME: Analytics engine over the metric/medication/goal store.
// ABOUTME: Every computation is a fresh synchronous pass; nothing is cached.
package analytics

import (
	"math"
	"time"

	"github.com/openvital/vital/internal/models"
)

// Store is the read surface the engine needs. Both storage backends
// satisfy it.
type Store interface {
	QueryByType(metricType string, limit int) ([]*models.Metric, error)
	QueryByTypeAsc(metricType string, limit int) ([]*models.Metric, error)
	QueryByDate(day time.Time) ([]*models.Metric, error)
	QueryByDateRange(from, to time.Time) ([]*models.Metric, error)
	QueryAll(metricType string, from, to time.Time) ([]*models.Metric, error)
	DistinctMetricTypes() ([]string, error)
	DistinctEntryDates(from, to time.Time) ([]string, error)
	GetMedicationByName(name string) (*models.Medication, error)
	GetMedicationByNameAny(name string) (*models.Medication, error)
	ListMedications(includeStopped bool) ([]*models.Medication, error)
	ListGoals(activeOnly bool) ([]*models.Goal, error)
}

// Engine computes analytics from store contents. All dates are UTC.
type Engine struct {
	store Store
	now   func() time.Time
}

// New creates an engine using the wall clock.
func New(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// NewWithClock creates an engine with an injected clock, for tests.
func NewWithClock(store Store, now func() time.Time) *Engine {
	return &Engine{store: store, now: now}
}

// today returns the current UTC date truncated to midnight.
func (e *Engine) today() time.Time {
	return dateOf(e.now())
}

func dateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// weekStart returns the Monday of the ISO week containing day.
func weekStart(day time.Time) time.Time {
	d := dateOf(day)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
