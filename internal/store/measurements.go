// ABOUTME: Body measurement operations.
// ABOUTME: Values are validated before they reach storage.
package store

import (
	"context"
	"fmt"

	"github.com/harperreed/fitnotes/internal/models"
)

// AddMeasurement records a body measurement.
func (s *Store) AddMeasurement(ctx context.Context, m *models.Measurement) (int64, error) {
	if !models.IsValidMeasurementType(string(m.Type)) {
		return 0, fmt.Errorf("%w: measurement type %q", ErrInvalid, m.Type)
	}
	if !models.ValidDate(m.Date) {
		return 0, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalid, m.Date)
	}
	return s.repo.Conn().AddMeasurement(ctx, m)
}

// ListMeasurements returns measurements, newest first, optionally by type.
func (s *Store) ListMeasurements(ctx context.Context, mt *models.MeasurementType) ([]models.Measurement, error) {
	return s.repo.Conn().ListMeasurements(ctx, mt)
}

// UpdateMeasurement applies patch to a measurement.
func (s *Store) UpdateMeasurement(ctx context.Context, id int64, patch models.MeasurementPatch) error {
	if patch.Date != nil && !models.ValidDate(*patch.Date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalid, *patch.Date)
	}
	return s.repo.Conn().UpdateMeasurement(ctx, id, patch)
}

// DeleteMeasurement removes a measurement.
func (s *Store) DeleteMeasurement(ctx context.Context, id int64) error {
	return s.repo.Conn().DeleteMeasurement(ctx, id)
}
