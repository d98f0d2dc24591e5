// ABOUTME: Measurement CRUD operations for SQLite storage.
// ABOUTME: Supports filtering by type and date ordering for progress views.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitnotes/internal/models"
)

const measurementColumns = `id, type, value, date, notes, created_at`

// AddMeasurement stores a new measurement, stamping CreatedAt, and sets m.ID.
func (c *Conn) AddMeasurement(ctx context.Context, m *models.Measurement) (int64, error) {
	m.CreatedAt = now()
	res, err := c.q.ExecContext(ctx, `
		INSERT INTO measurements (type, value, date, notes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, string(m.Type), m.Value, m.Date, nullString(m.Notes), formatTime(m.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("add measurement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add measurement: %w", err)
	}
	m.ID = id
	return id, nil
}

// GetMeasurement retrieves a measurement by ID.
func (c *Conn) GetMeasurement(ctx context.Context, id int64) (*models.Measurement, error) {
	row := c.q.QueryRowContext(ctx, `SELECT `+measurementColumns+` FROM measurements WHERE id = ?`, id)
	m, err := scanMeasurement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("measurement %d: %w", id, ErrNotFound)
	}
	return m, err
}

// ListMeasurements returns measurements, most recent date first, optionally
// filtered by type.
func (c *Conn) ListMeasurements(ctx context.Context, mt *models.MeasurementType) ([]models.Measurement, error) {
	query := `SELECT ` + measurementColumns + ` FROM measurements`
	var args []any
	if mt != nil {
		query += ` WHERE type = ?`
		args = append(args, string(*mt))
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	defer rows.Close()

	var out []models.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// UpdateMeasurement applies patch to an existing measurement.
func (c *Conn) UpdateMeasurement(ctx context.Context, id int64, patch models.MeasurementPatch) error {
	m, err := c.GetMeasurement(ctx, id)
	if err != nil {
		return fmt.Errorf("update measurement: %w", err)
	}
	patch.Apply(m)
	_, err = c.q.ExecContext(ctx, `
		UPDATE measurements SET value = ?, date = ?, notes = ? WHERE id = ?
	`, m.Value, m.Date, nullString(m.Notes), id)
	if err != nil {
		return fmt.Errorf("update measurement: %w", err)
	}
	return nil
}

// DeleteMeasurement removes a measurement.
func (c *Conn) DeleteMeasurement(ctx context.Context, id int64) error {
	return c.deleteByID(ctx, "measurements", id)
}

// BulkAddMeasurements inserts measurements as given, keeping IDs and timestamps.
func (c *Conn) BulkAddMeasurements(ctx context.Context, measurements []models.Measurement) error {
	for i := range measurements {
		m := &measurements[i]
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now()
		}
		res, err := c.q.ExecContext(ctx, `
			INSERT INTO measurements (id, type, value, date, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, nullID(m.ID), string(m.Type), m.Value, m.Date, nullString(m.Notes), formatTime(m.CreatedAt))
		if err != nil {
			return fmt.Errorf("bulk add measurement: %w", err)
		}
		if m.ID == 0 {
			if m.ID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("bulk add measurement: %w", err)
			}
		}
	}
	return nil
}

// ClearMeasurements removes every measurement.
func (c *Conn) ClearMeasurements(ctx context.Context) error {
	return c.clear(ctx, "measurements")
}

// CountMeasurements returns the number of measurements.
func (c *Conn) CountMeasurements(ctx context.Context) (int, error) {
	return c.count(ctx, "measurements")
}

func scanMeasurement(row rowScanner) (*models.Measurement, error) {
	var m models.Measurement
	var typ, createdAt string
	var notes sql.NullString

	if err := row.Scan(&m.ID, &typ, &m.Value, &m.Date, &notes, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan measurement: %w", err)
	}
	m.Type = models.MeasurementType(typ)
	m.Notes = notes.String
	m.CreatedAt = parseTime(createdAt)
	return &m, nil
}
