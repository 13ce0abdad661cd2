// ABOUTME: Store interface for health data backends.
// ABOUTME: Implemented by the SQLite DB and the Badger KV store.
package storage

import (
	"time"

	"github.com/openvital/vital/internal/models"
)

// Store defines the storage contract for metrics, medications, and goals.
// This interface allows swapping backends (and simplifies testing).
type Store interface {
	// Metric operations. Observations are append-only.
	InsertMetric(m *models.Metric) error
	QueryByType(metricType string, limit int) ([]*models.Metric, error)
	QueryByTypeAsc(metricType string, limit int) ([]*models.Metric, error)
	QueryByDate(day time.Time) ([]*models.Metric, error)
	QueryByDateRange(from, to time.Time) ([]*models.Metric, error)
	QueryAll(metricType string, from, to time.Time) ([]*models.Metric, error)
	DistinctMetricTypes() ([]string, error)
	DistinctEntryDates(from, to time.Time) ([]string, error)

	// Medication operations.
	InsertMedication(m *models.Medication) error
	GetMedicationByName(name string) (*models.Medication, error)
	GetMedicationByNameAny(name string) (*models.Medication, error)
	ListMedications(includeStopped bool) ([]*models.Medication, error)
	StopMedication(name string, stoppedAt time.Time, reason string) (bool, error)
	RemoveMedication(name string) (bool, error)

	// Goal operations.
	InsertGoal(g *models.Goal) error
	ListGoals(activeOnly bool) ([]*models.Goal, error)
	GetGoalByType(metricType string) (*models.Goal, error)
	DeactivateGoal(id string) (bool, error)
	DeactivateGoalByType(metricType string) (bool, error)

	// Lifecycle.
	Close() error
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*KVStore)(nil)
)
