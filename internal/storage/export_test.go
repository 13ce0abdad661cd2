// ABOUTME: Tests for export and import round trips.
// ABOUTME: Verifies JSON, CSV, and YAML formats preserve observations.
package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/openvital/vital/internal/models"
)

func seedExportData(t *testing.T, d *DB) {
	t.Helper()
	m1 := models.NewMetric("weight", 82.5).
		WithNote("morning").
		WithTimestamp(time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC))
	m1.Tags = []string{"fasted"}
	require.NoError(t, d.InsertMetric(m1))

	m2 := models.NewMetric("water", 500).
		WithTimestamp(time.Date(2026, 8, 11, 12, 0, 0, 0, time.UTC))
	require.NoError(t, d.InsertMetric(m2))
}

func TestExportImportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	seedExportData(t, src)

	data, err := ExportJSON(src, "", time.Time{}, time.Time{})
	require.NoError(t, err)

	dst := setupTestDB(t)
	count, err := ImportJSON(dst, data)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := dst.QueryAll("", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "weight", got[0].MetricType)
	assert.Equal(t, 82.5, got[0].Value)
	assert.Equal(t, time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC), got[0].Timestamp)
	require.NotNil(t, got[0].Note)
	assert.Equal(t, "morning", *got[0].Note)
	assert.Equal(t, []string{"fasted"}, got[0].Tags)

	assert.Equal(t, "water", got[1].MetricType)
	assert.Equal(t, 500.0, got[1].Value)
}

func TestExportImportCSVRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	seedExportData(t, src)

	data, err := ExportCSV(src, "", time.Time{}, time.Time{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(data), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "timestamp,type,value,unit,note,tags,source", lines[0])

	dst := setupTestDB(t)
	count, err := ImportCSV(dst, data)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := dst.QueryAll("weight", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 82.5, got[0].Value)
	assert.Equal(t, "kg", got[0].Unit)
	assert.Equal(t, time.Date(2026, 8, 10, 8, 0, 0, 0, time.UTC), got[0].Timestamp)
	assert.Equal(t, models.SourceManual, got[0].Source)
}

func TestExportFiltersTypeAndRange(t *testing.T) {
	d := setupTestDB(t)
	seedExportData(t, d)

	data, err := ExportCSV(d, "weight", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Contains(t, data, "weight")
	assert.NotContains(t, data, "water")

	from := time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)
	data, err = ExportCSV(d, "", from, time.Time{})
	require.NoError(t, err)
	assert.NotContains(t, data, "weight")
	assert.Contains(t, data, "water")
}

func TestExportYAML(t *testing.T) {
	d := setupTestDB(t)
	seedExportData(t, d)

	data, err := ExportYAML(d, "", time.Time{}, time.Time{})
	require.NoError(t, err)

	var entries []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(data), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "weight", entries[0]["type"])
}
