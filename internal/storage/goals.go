// ABOUTME: Goal CRUD operations for SQLite storage.
// ABOUTME: Goals are soft-retired: deactivation flips the active flag, rows stay.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/openvital/vital/internal/models"
)

const goalCols = "id, metric_type, target_value, direction, timeframe, active, created_at"

// InsertGoal stores a new goal.
func (d *DB) InsertGoal(g *models.Goal) error {
	_, err := d.db.Exec(
		`INSERT INTO goals (`+goalCols+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.MetricType, g.TargetValue, string(g.Direction), string(g.Timeframe),
		boolInt(g.Active), g.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

// ListGoals lists goals, optionally only active ones, oldest first.
func (d *DB) ListGoals(activeOnly bool) ([]*models.Goal, error) {
	query := `SELECT ` + goalCols + ` FROM goals`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY created_at`

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// GetGoalByType returns the active goal for a metric type, or nil.
func (d *DB) GetGoalByType(metricType string) (*models.Goal, error) {
	rows, err := d.db.Query(
		`SELECT `+goalCols+` FROM goals WHERE metric_type = ? AND active = 1 LIMIT 1`, metricType)
	if err != nil {
		return nil, fmt.Errorf("get goal by type: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanGoal(rows)
}

// DeactivateGoal soft-retires a goal by ID. Returns false when no active
// goal matched.
func (d *DB) DeactivateGoal(id string) (bool, error) {
	return d.deactivate(`UPDATE goals SET active = 0 WHERE id = ? AND active = 1`, id)
}

// DeactivateGoalByType soft-retires the active goal for a metric type.
func (d *DB) DeactivateGoalByType(metricType string) (bool, error) {
	return d.deactivate(`UPDATE goals SET active = 0 WHERE metric_type = ? AND active = 1`, metricType)
}

func (d *DB) deactivate(query, arg string) (bool, error) {
	result, err := d.db.Exec(query, arg)
	if err != nil {
		return false, fmt.Errorf("deactivate goal: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deactivate goal: %w", err)
	}
	return n > 0, nil
}

func scanGoal(rows *sql.Rows) (*models.Goal, error) {
	var g models.Goal
	var direction, timeframe, createdAt string
	var active int

	err := rows.Scan(&g.ID, &g.MetricType, &g.TargetValue, &direction, &timeframe, &active, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan goal: %w", err)
	}

	g.Direction = models.Direction(direction)
	g.Timeframe = models.Timeframe(timeframe)
	g.Active = active != 0
	g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse goal created_at: %w", err)
	}
	return &g, nil
}
