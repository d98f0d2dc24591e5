// ABOUTME: Body measurement model and MeasurementType enum.
// ABOUTME: Covers bodyweight, composition and tape measurements.
package models

import "time"

// MeasurementType represents what a body measurement records.
type MeasurementType string

const (
	MeasureWeight     MeasurementType = "weight"
	MeasureBodyFat    MeasurementType = "body_fat"
	MeasureMuscleMass MeasurementType = "muscle_mass"
	MeasureWaist      MeasurementType = "waist"
	MeasureChest      MeasurementType = "chest"
	MeasureArms       MeasurementType = "arms"
	MeasureThighs     MeasurementType = "thighs"
)

// MeasurementUnits maps measurement types to their metric display units.
var MeasurementUnits = map[MeasurementType]string{
	MeasureWeight:     "kg",
	MeasureBodyFat:    "%",
	MeasureMuscleMass: "kg",
	MeasureWaist:      "cm",
	MeasureChest:      "cm",
	MeasureArms:       "cm",
	MeasureThighs:     "cm",
}

// AllMeasurementTypes returns all valid measurement types.
var AllMeasurementTypes = []MeasurementType{
	MeasureWeight, MeasureBodyFat, MeasureMuscleMass,
	MeasureWaist, MeasureChest, MeasureArms, MeasureThighs,
}

// IsValidMeasurementType checks if a string is a valid measurement type.
func IsValidMeasurementType(s string) bool {
	for _, mt := range AllMeasurementTypes {
		if string(mt) == s {
			return true
		}
	}
	return false
}

// Measurement is a single body measurement on a date.
type Measurement struct {
	ID        int64           `json:"id" yaml:"id"`
	Type      MeasurementType `json:"type" yaml:"type"`
	Value     float64         `json:"value" yaml:"value"`
	Date      string          `json:"date" yaml:"date"`
	Notes     string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt" yaml:"createdAt"`
}

// NewMeasurement creates a measurement dated today.
func NewMeasurement(t MeasurementType, value float64) *Measurement {
	return &Measurement{
		Type:  t,
		Value: value,
		Date:  time.Now().Format(DateLayout),
	}
}

// WithDate sets a custom date (YYYY-MM-DD).
func (m *Measurement) WithDate(date string) *Measurement {
	m.Date = date
	return m
}

// WithNotes sets notes on the measurement.
func (m *Measurement) WithNotes(notes string) *Measurement {
	m.Notes = notes
	return m
}

// Unit returns the display unit for the measurement's type.
func (m *Measurement) Unit() string {
	return MeasurementUnits[m.Type]
}

// MeasurementPatch holds optional field changes for a measurement update.
type MeasurementPatch struct {
	Value *float64
	Date  *string
	Notes *string
}

// Apply copies the set fields of the patch onto m.
func (p MeasurementPatch) Apply(m *Measurement) {
	if p.Value != nil {
		m.Value = *p.Value
	}
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
}
