// ABOUTME: Tests for the Badger Store backend.
// ABOUTME: Exercises the same contract the SQLite tests cover.
package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvital/vital/internal/models"
)

func setupTestKV(t *testing.T) *KVStore {
	t.Helper()
	k, err := OpenKV(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { k.Close() })
	return k
}

func TestKVMetricRoundTrip(t *testing.T) {
	k := setupTestKV(t)

	m := models.NewMetric("weight", 82.5).
		WithNote("morning").
		WithTimestamp(time.Date(2026, 8, 12, 9, 0, 0, 0, time.UTC))
	require.NoError(t, k.InsertMetric(m))

	got, err := k.QueryByType("weight", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, m.ID, got[0].ID)
	assert.Equal(t, 82.5, got[0].Value)
	require.NotNil(t, got[0].Note)
	assert.Equal(t, "morning", *got[0].Note)
}

func TestKVDateQueries(t *testing.T) {
	k := setupTestKV(t)

	for day := 10; day <= 13; day++ {
		m := models.NewMetric("sleep", 7).
			WithTimestamp(time.Date(2026, 8, day, 23, 0, 0, 0, time.UTC))
		require.NoError(t, k.InsertMetric(m))
	}

	got, err := k.QueryByDateRange(
		time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	dates, err := k.DistinctEntryDates(
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-13", "2026-08-12", "2026-08-11", "2026-08-10"}, dates)
}

func TestKVMedicationLifecycle(t *testing.T) {
	k := setupTestKV(t)

	med := models.NewMedication("ibuprofen", models.FreqDaily)
	require.NoError(t, k.InsertMedication(med))

	dup := models.NewMedication("ibuprofen", models.FreqDaily)
	assert.Error(t, k.InsertMedication(dup))

	ok, err := k.StopMedication("ibuprofen", time.Now().UTC(), "done")
	require.NoError(t, err)
	assert.True(t, ok)

	active, err := k.GetMedicationByName("ibuprofen")
	require.NoError(t, err)
	assert.Nil(t, active)

	any, err := k.GetMedicationByNameAny("ibuprofen")
	require.NoError(t, err)
	require.NotNil(t, any)
	assert.False(t, any.Active)
}

func TestKVGoalLifecycle(t *testing.T) {
	k := setupTestKV(t)

	g := models.NewGoal("water", 2000, models.DirectionAbove, models.TimeframeDaily)
	require.NoError(t, k.InsertGoal(g))

	got, err := k.GetGoalByType("water")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, g.ID, got.ID)

	ok, err := k.DeactivateGoal(g.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err = k.GetGoalByType("water")
	require.NoError(t, err)
	assert.Nil(t, got)
}
