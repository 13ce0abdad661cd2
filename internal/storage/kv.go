// ABOUTME: Badger key/value Store backend with type-prefixed keys.
// ABOUTME: Records are JSON values; queries filter and sort client-side.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	badger "github.com/dgraph-io/badger/v3"

	"github.com/openvital/vital/internal/models"
)

// Key prefixes for the KV backend.
const (
	metricPrefix = "metric:"
	medPrefix    = "med:"
	goalPrefix   = "goal:"
)

// KVStore is the Badger-backed Store implementation. It trades indexed
// queries for a single-file-tree embedded KV; at personal-tracker volumes
// full prefix scans are cheap.
type KVStore struct {
	db *badger.DB
}

// OpenKV opens or creates a Badger store in the given directory.
func OpenKV(dir string) (*KVStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open kv store: %w", err)
	}
	return &KVStore{db: db}, nil
}

// Close closes the underlying Badger database.
func (k *KVStore) Close() error {
	return k.db.Close()
}

func (k *KVStore) set(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return k.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (k *KVStore) delete(key string) error {
	return k.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// listPrefix collects every value under a key prefix.
func (k *KVStore) listPrefix(prefix string) ([][]byte, error) {
	var values [][]byte
	err := k.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", prefix, err)
	}
	return values, nil
}

func (k *KVStore) allMetrics() ([]*models.Metric, error) {
	values, err := k.listPrefix(metricPrefix)
	if err != nil {
		return nil, err
	}
	metrics := make([]*models.Metric, 0, len(values))
	for _, v := range values {
		var m models.Metric
		if err := json.Unmarshal(v, &m); err != nil {
			continue // skip invalid entries
		}
		metrics = append(metrics, &m)
	}
	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Timestamp.Before(metrics[j].Timestamp)
	})
	return metrics, nil
}

// InsertMetric stores a new metric.
func (k *KVStore) InsertMetric(m *models.Metric) error {
	return k.set(metricPrefix+m.ID, m)
}

// QueryByType returns the most recent metrics of a type, newest first.
func (k *KVStore) QueryByType(metricType string, limit int) ([]*models.Metric, error) {
	asc, err := k.QueryByTypeAsc(metricType, 0)
	if err != nil {
		return nil, err
	}
	desc := make([]*models.Metric, 0, len(asc))
	for i := len(asc) - 1; i >= 0; i-- {
		desc = append(desc, asc[i])
	}
	if limit <= 0 {
		limit = 1
	}
	if len(desc) > limit {
		desc = desc[:limit]
	}
	return desc, nil
}

// QueryByTypeAsc returns a type's history oldest first. limit <= 0 means all.
func (k *KVStore) QueryByTypeAsc(metricType string, limit int) ([]*models.Metric, error) {
	all, err := k.allMetrics()
	if err != nil {
		return nil, err
	}
	var out []*models.Metric
	for _, m := range all {
		if m.MetricType == metricType {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// QueryByDate returns all metrics recorded on a single UTC date, ascending.
func (k *KVStore) QueryByDate(day time.Time) ([]*models.Metric, error) {
	return k.QueryByDateRange(day, day)
}

// QueryByDateRange returns metrics within an inclusive UTC date range, ascending.
func (k *KVStore) QueryByDateRange(from, to time.Time) ([]*models.Metric, error) {
	return k.QueryAll("", from, to)
}

// QueryAll returns metrics ascending, optionally filtered by type and
// bounded by inclusive dates. Empty type or zero times mean unbounded.
func (k *KVStore) QueryAll(metricType string, from, to time.Time) ([]*models.Metric, error) {
	all, err := k.allMetrics()
	if err != nil {
		return nil, err
	}
	var out []*models.Metric
	for _, m := range all {
		if metricType != "" && m.MetricType != metricType {
			continue
		}
		date := m.Timestamp.UTC().Format("2006-01-02")
		if !from.IsZero() && date < from.UTC().Format("2006-01-02") {
			continue
		}
		if !to.IsZero() && date > to.UTC().Format("2006-01-02") {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// DistinctMetricTypes lists every metric type present in the store.
func (k *KVStore) DistinctMetricTypes() ([]string, error) {
	all, err := k.allMetrics()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var types []string
	for _, m := range all {
		if !seen[m.MetricType] {
			seen[m.MetricType] = true
			types = append(types, m.MetricType)
		}
	}
	sort.Strings(types)
	return types, nil
}

// DistinctEntryDates lists the distinct UTC dates with any entry in the
// inclusive range, newest first, formatted YYYY-MM-DD.
func (k *KVStore) DistinctEntryDates(from, to time.Time) ([]string, error) {
	entries, err := k.QueryByDateRange(from, to)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var dates []string
	for _, m := range entries {
		d := m.Timestamp.UTC().Format("2006-01-02")
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

func (k *KVStore) allMedications() ([]*models.Medication, error) {
	values, err := k.listPrefix(medPrefix)
	if err != nil {
		return nil, err
	}
	meds := make([]*models.Medication, 0, len(values))
	for _, v := range values {
		var m models.Medication
		if err := json.Unmarshal(v, &m); err != nil {
			continue
		}
		meds = append(meds, &m)
	}
	sort.Slice(meds, func(i, j int) bool { return meds[i].Name < meds[j].Name })
	return meds, nil
}

// InsertMedication stores a new medication, enforcing the one-active-per-name
// rule the SQLite backend gets from its partial unique index.
func (k *KVStore) InsertMedication(m *models.Medication) error {
	if m.Active {
		existing, err := k.GetMedicationByName(m.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("insert medication: active medication %q already exists", m.Name)
		}
	}
	return k.set(medPrefix+m.ID, m)
}

// GetMedicationByName returns the active medication with this name, or nil.
func (k *KVStore) GetMedicationByName(name string) (*models.Medication, error) {
	meds, err := k.allMedications()
	if err != nil {
		return nil, err
	}
	for _, m := range meds {
		if m.Name == name && m.Active {
			return m, nil
		}
	}
	return nil, nil
}

// GetMedicationByNameAny returns a medication by name regardless of active
// state, preferring an active one. Returns nil when not found.
func (k *KVStore) GetMedicationByNameAny(name string) (*models.Medication, error) {
	meds, err := k.allMedications()
	if err != nil {
		return nil, err
	}
	var found *models.Medication
	for _, m := range meds {
		if m.Name != name {
			continue
		}
		if m.Active {
			return m, nil
		}
		found = m
	}
	return found, nil
}

// ListMedications lists medications, optionally including stopped ones.
func (k *KVStore) ListMedications(includeStopped bool) ([]*models.Medication, error) {
	meds, err := k.allMedications()
	if err != nil {
		return nil, err
	}
	if includeStopped {
		return meds, nil
	}
	var active []*models.Medication
	for _, m := range meds {
		if m.Active {
			active = append(active, m)
		}
	}
	return active, nil
}

// StopMedication deactivates the active medication with this name.
func (k *KVStore) StopMedication(name string, stoppedAt time.Time, reason string) (bool, error) {
	m, err := k.GetMedicationByName(name)
	if err != nil || m == nil {
		return false, err
	}
	m.Active = false
	t := stoppedAt.UTC()
	m.StoppedAt = &t
	if reason != "" {
		m.StopReason = &reason
	}
	if err := k.set(medPrefix+m.ID, m); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveMedication deletes all medication records with this name.
// Intake observations are untouched.
func (k *KVStore) RemoveMedication(name string) (bool, error) {
	meds, err := k.allMedications()
	if err != nil {
		return false, err
	}
	removed := false
	for _, m := range meds {
		if m.Name != name {
			continue
		}
		if err := k.delete(medPrefix + m.ID); err != nil {
			return removed, fmt.Errorf("remove medication: %w", err)
		}
		removed = true
	}
	return removed, nil
}

func (k *KVStore) allGoals() ([]*models.Goal, error) {
	values, err := k.listPrefix(goalPrefix)
	if err != nil {
		return nil, err
	}
	goals := make([]*models.Goal, 0, len(values))
	for _, v := range values {
		var g models.Goal
		if err := json.Unmarshal(v, &g); err != nil {
			continue
		}
		goals = append(goals, &g)
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].CreatedAt.Before(goals[j].CreatedAt) })
	return goals, nil
}

// InsertGoal stores a new goal.
func (k *KVStore) InsertGoal(g *models.Goal) error {
	return k.set(goalPrefix+g.ID, g)
}

// ListGoals lists goals, optionally only active ones, oldest first.
func (k *KVStore) ListGoals(activeOnly bool) ([]*models.Goal, error) {
	goals, err := k.allGoals()
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return goals, nil
	}
	var active []*models.Goal
	for _, g := range goals {
		if g.Active {
			active = append(active, g)
		}
	}
	return active, nil
}

// GetGoalByType returns the active goal for a metric type, or nil.
func (k *KVStore) GetGoalByType(metricType string) (*models.Goal, error) {
	goals, err := k.allGoals()
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		if g.MetricType == metricType && g.Active {
			return g, nil
		}
	}
	return nil, nil
}

// DeactivateGoal soft-retires a goal by ID.
func (k *KVStore) DeactivateGoal(id string) (bool, error) {
	goals, err := k.allGoals()
	if err != nil {
		return false, err
	}
	for _, g := range goals {
		if g.ID == id && g.Active {
			g.Active = false
			if err := k.set(goalPrefix+g.ID, g); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// DeactivateGoalByType soft-retires the active goal for a metric type.
func (k *KVStore) DeactivateGoalByType(metricType string) (bool, error) {
	g, err := k.GetGoalByType(metricType)
	if err != nil || g == nil {
		return false, err
	}
	g.Active = false
	if err := k.set(goalPrefix+g.ID, g); err != nil {
		return false, err
	}
	return true, nil
}
