// ABOUTME: Medication CRUD operations for SQLite storage.
// ABOUTME: Removing a medication deletes its metadata only, never its intake history.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/openvital/vital/internal/models"
)

const medCols = "id, name, dose, dose_value, dose_unit, route, frequency, active, started_at, stopped_at, stop_reason, note, created_at"

// InsertMedication stores a new medication. Fails if an active medication
// with the same name already exists (partial unique index).
func (d *DB) InsertMedication(m *models.Medication) error {
	var stoppedAt *string
	if m.StoppedAt != nil {
		s := m.StoppedAt.UTC().Format(time.RFC3339)
		stoppedAt = &s
	}
	_, err := d.db.Exec(
		`INSERT INTO medications (`+medCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Dose, m.DoseValue, m.DoseUnit,
		string(m.Route), string(m.Frequency), boolInt(m.Active),
		m.StartedAt.UTC().Format(time.RFC3339), stoppedAt, m.StopReason, m.Note,
		m.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert medication: %w", err)
	}
	return nil
}

// GetMedicationByName returns the active medication with this name, or nil.
func (d *DB) GetMedicationByName(name string) (*models.Medication, error) {
	return d.getMedication(
		`SELECT `+medCols+` FROM medications WHERE name = ? AND active = 1`, name)
}

// GetMedicationByNameAny returns a medication by name regardless of active
// state, preferring an active one. Returns nil when not found.
func (d *DB) GetMedicationByNameAny(name string) (*models.Medication, error) {
	return d.getMedication(
		`SELECT `+medCols+` FROM medications WHERE name = ? ORDER BY active DESC LIMIT 1`, name)
}

// ListMedications lists medications, optionally including stopped ones.
func (d *DB) ListMedications(includeStopped bool) ([]*models.Medication, error) {
	query := `SELECT ` + medCols + ` FROM medications`
	if !includeStopped {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	defer rows.Close()

	var meds []*models.Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		meds = append(meds, m)
	}
	return meds, rows.Err()
}

// StopMedication deactivates the active medication with this name.
// Returns false when nothing was active under that name.
func (d *DB) StopMedication(name string, stoppedAt time.Time, reason string) (bool, error) {
	var reasonArg *string
	if reason != "" {
		reasonArg = &reason
	}
	result, err := d.db.Exec(
		`UPDATE medications SET active = 0, stopped_at = ?, stop_reason = ? WHERE name = ? AND active = 1`,
		stoppedAt.UTC().Format(time.RFC3339), reasonArg, name)
	if err != nil {
		return false, fmt.Errorf("stop medication: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("stop medication: %w", err)
	}
	return n > 0, nil
}

// RemoveMedication deletes all medication records with this name.
// Intake observations in the metrics table are untouched.
func (d *DB) RemoveMedication(name string) (bool, error) {
	result, err := d.db.Exec(`DELETE FROM medications WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("remove medication: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove medication: %w", err)
	}
	return n > 0, nil
}

func (d *DB) getMedication(query string, args ...interface{}) (*models.Medication, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("get medication: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanMedication(rows)
}

func scanMedication(rows *sql.Rows) (*models.Medication, error) {
	var m models.Medication
	var route, frequency, startedAt, createdAt string
	var active int
	var stoppedAt sql.NullString

	err := rows.Scan(&m.ID, &m.Name, &m.Dose, &m.DoseValue, &m.DoseUnit,
		&route, &frequency, &active, &startedAt, &stoppedAt, &m.StopReason, &m.Note, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan medication: %w", err)
	}

	m.Route = models.Route(route)
	m.Frequency = models.Frequency(frequency)
	m.Active = active != 0
	m.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if stoppedAt.Valid {
		t, err := time.Parse(time.RFC3339, stoppedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse stopped_at: %w", err)
		}
		m.StoppedAt = &t
	}
	m.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &m, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
