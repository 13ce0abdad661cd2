// ABOUTME: Metric query operations for SQLite storage.
// ABOUTME: Timestamps are stored as RFC3339 UTC text; date bounds compare lexically.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openvital/vital/internal/models"
)

const metricCols = "id, timestamp, category, type, value, unit, note, tags, source"

// InsertMetric stores a new metric.
func (d *DB) InsertMetric(m *models.Metric) error {
	var tagsJSON *string
	if len(m.Tags) > 0 {
		b, err := json.Marshal(m.Tags)
		if err != nil {
			return fmt.Errorf("marshal tags: %w", err)
		}
		s := string(b)
		tagsJSON = &s
	}
	_, err := d.db.Exec(
		`INSERT INTO metrics (`+metricCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID,
		m.Timestamp.UTC().Format(time.RFC3339),
		string(m.Category),
		m.MetricType,
		m.Value,
		m.Unit,
		m.Note,
		tagsJSON,
		m.Source,
	)
	if err != nil {
		return fmt.Errorf("insert metric: %w", err)
	}
	return nil
}

// QueryByType returns the most recent metrics of a type, newest first.
func (d *DB) QueryByType(metricType string, limit int) ([]*models.Metric, error) {
	if limit <= 0 {
		limit = 1
	}
	rows, err := d.db.Query(
		`SELECT `+metricCols+` FROM metrics WHERE type = ? ORDER BY timestamp DESC LIMIT ?`,
		metricType, limit)
	if err != nil {
		return nil, fmt.Errorf("query by type: %w", err)
	}
	defer rows.Close()
	return scanMetrics(rows)
}

// QueryByTypeAsc returns a type's history oldest first. limit <= 0 means all.
func (d *DB) QueryByTypeAsc(metricType string, limit int) ([]*models.Metric, error) {
	query := `SELECT ` + metricCols + ` FROM metrics WHERE type = ? ORDER BY timestamp ASC`
	args := []interface{}{metricType}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query by type asc: %w", err)
	}
	defer rows.Close()
	return scanMetrics(rows)
}

// QueryByDate returns all metrics recorded on a single UTC date, ascending.
func (d *DB) QueryByDate(day time.Time) ([]*models.Metric, error) {
	return d.QueryByDateRange(day, day)
}

// QueryByDateRange returns metrics within an inclusive UTC date range, ascending.
func (d *DB) QueryByDateRange(from, to time.Time) ([]*models.Metric, error) {
	rows, err := d.db.Query(
		`SELECT `+metricCols+` FROM metrics WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp`,
		dayStart(from), dayStart(to.AddDate(0, 0, 1)))
	if err != nil {
		return nil, fmt.Errorf("query by date range: %w", err)
	}
	defer rows.Close()
	return scanMetrics(rows)
}

// QueryAll returns metrics ascending, optionally filtered by type and
// bounded by inclusive dates. Empty type or zero times mean unbounded.
func (d *DB) QueryAll(metricType string, from, to time.Time) ([]*models.Metric, error) {
	query := `SELECT ` + metricCols + ` FROM metrics WHERE 1=1`
	var args []interface{}
	if metricType != "" {
		query += " AND type = ?"
		args = append(args, metricType)
	}
	if !from.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, dayStart(from))
	}
	if !to.IsZero() {
		query += " AND timestamp < ?"
		args = append(args, dayStart(to.AddDate(0, 0, 1)))
	}
	query += " ORDER BY timestamp ASC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query all: %w", err)
	}
	defer rows.Close()
	return scanMetrics(rows)
}

// DistinctMetricTypes lists every metric type present in the store.
func (d *DB) DistinctMetricTypes() ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT type FROM metrics ORDER BY type`)
	if err != nil {
		return nil, fmt.Errorf("distinct metric types: %w", err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan metric type: %w", err)
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// DistinctEntryDates lists the distinct UTC dates with any entry in the
// inclusive range, newest first, formatted YYYY-MM-DD.
func (d *DB) DistinctEntryDates(from, to time.Time) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT DISTINCT date(timestamp) AS d FROM metrics
		 WHERE timestamp >= ? AND timestamp < ? ORDER BY d DESC`,
		dayStart(from), dayStart(to.AddDate(0, 0, 1)))
	if err != nil {
		return nil, fmt.Errorf("distinct entry dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan entry date: %w", err)
		}
		dates = append(dates, s)
	}
	return dates, rows.Err()
}

func dayStart(day time.Time) string {
	return day.UTC().Format("2006-01-02") + "T00:00:00"
}

func scanMetrics(rows *sql.Rows) ([]*models.Metric, error) {
	var metrics []*models.Metric
	for rows.Next() {
		var m models.Metric
		var category, timestamp string
		var note, tags sql.NullString

		err := rows.Scan(&m.ID, &timestamp, &category, &m.MetricType, &m.Value, &m.Unit, &note, &tags, &m.Source)
		if err != nil {
			return nil, fmt.Errorf("scan metric: %w", err)
		}

		m.Category = models.Category(category)
		m.Timestamp, err = time.Parse(time.RFC3339, timestamp)
		if err != nil {
			return nil, fmt.Errorf("parse metric timestamp: %w", err)
		}
		if note.Valid {
			m.Note = &note.String
		}
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &m.Tags); err != nil {
				m.Tags = nil
			}
		}

		metrics = append(metrics, &m)
	}
	return metrics, rows.Err()
}
