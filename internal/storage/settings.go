// ABOUTME: Singleton settings row (id = 1) for SQLite storage.
// ABOUTME: A missing row is repaired with defaults before any settings write.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/fitnotes/internal/models"
)

// GetSettings returns the settings row or ErrNotFound if none exists yet.
func (c *Conn) GetSettings(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	err := c.q.QueryRowContext(ctx, `
		SELECT id, theme, units, weight_increment, timer_sound, seeding_done
		FROM settings WHERE id = ?
	`, models.SettingsID).Scan(&s.ID, &s.Theme, &s.Units, &s.WeightIncrement, &s.TimerSound, &s.SeedingDone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settings: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

// PutSettings upserts the settings row. The ID is always forced to 1, and a
// seeding_done already set on the row stays set.
func (c *Conn) PutSettings(ctx context.Context, s models.Settings) error {
	_, err := c.q.ExecContext(ctx, `
		INSERT INTO settings (id, theme, units, weight_increment, timer_sound, seeding_done)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			theme = excluded.theme,
			units = excluded.units,
			weight_increment = excluded.weight_increment,
			timer_sound = excluded.timer_sound,
			seeding_done = MAX(settings.seeding_done, excluded.seeding_done)
	`, models.SettingsID, s.Theme, s.Units, s.WeightIncrement, s.TimerSound, s.SeedingDone)
	if err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}

// EnsureSettings returns the settings row, inserting defaults first if it
// is missing.
func (c *Conn) EnsureSettings(ctx context.Context) (*models.Settings, error) {
	s, err := c.GetSettings(ctx)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	def := models.DefaultSettings()
	if _, err := c.q.ExecContext(ctx, `
		INSERT OR IGNORE INTO settings (id, theme, units, weight_increment, timer_sound, seeding_done)
		VALUES (?, ?, ?, ?, ?, ?)
	`, def.ID, def.Theme, def.Units, def.WeightIncrement, def.TimerSound, def.SeedingDone); err != nil {
		return nil, fmt.Errorf("ensure settings: %w", err)
	}
	return c.GetSettings(ctx)
}

// UpdateSettings repairs a missing row and then applies patch inside one
// transaction, so the read and the write cannot straddle another writer.
func (d *DB) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	var out *models.Settings
	err := d.InTx(ctx, func(c *Conn) error {
		s, err := c.UpdateSettings(ctx, patch)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSettings repairs a missing row and then applies patch. Callers
// outside a transaction should use DB.UpdateSettings.
func (c *Conn) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	s, err := c.EnsureSettings(ctx)
	if err != nil {
		return nil, err
	}
	patch.Apply(s)
	if err := c.PutSettings(ctx, *s); err != nil {
		return nil, err
	}
	return s, nil
}

// ClearSettings removes the settings row.
func (c *Conn) ClearSettings(ctx context.Context) error {
	return c.clear(ctx, "settings")
}
