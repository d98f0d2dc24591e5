// ABOUTME: Settings operations and full data reset.
// ABOUTME: The settings row is authoritative; the side-store mirror is a cache.
package store

import (
	"context"
	"fmt"

	"github.com/harperreed/fitnotes/internal/models"
	"github.com/harperreed/fitnotes/internal/storage"
)

// Settings returns the replica's settings.
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// LoadSettings reads the settings row, inserting defaults if it is missing,
// and brings the mirror in line with it.
func (s *Store) LoadSettings(ctx context.Context) (models.Settings, error) {
	settings, err := s.repo.Conn().EnsureSettings(ctx)
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	s.setSettings(*settings)
	return *settings, nil
}

// UpdateSettings validates and applies patch, repairing a missing row first.
func (s *Store) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	candidate := s.Settings()
	patch.Apply(&candidate)
	if err := candidate.Validate(); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	settings, err := s.repo.UpdateSettings(ctx, patch)
	if err != nil {
		return models.Settings{}, err
	}
	s.setSettings(*settings)
	return *settings, nil
}

// ResetData wipes every collection and re-creates default settings with
// seeding marked done, all in one transaction, so a wiped store is not
// re-seeded on the next start. The seed guard is left untouched.
func (s *Store) ResetData(ctx context.Context) error {
	fresh := models.DefaultSettings()
	fresh.SeedingDone = true

	err := s.repo.InTx(ctx, func(c *storage.Conn) error {
		if err := c.ClearAll(ctx); err != nil {
			return err
		}
		return c.PutSettings(ctx, fresh)
	})
	if err != nil {
		return fmt.Errorf("reset data: %w", err)
	}

	s.mu.Lock()
	s.workouts = nil
	s.exercises = nil
	s.mu.Unlock()
	s.setSettings(fresh)

	if s.kv != nil {
		if err := s.kv.ClearLastBackup(); err != nil {
			s.log.Warn("clear last backup metadata", "err", err)
		}
	}
	s.log.Info("data reset")
	return nil
}

// setSettings updates the replica and the mirror. Mirror failures are
// logged; the settings row stays authoritative.
func (s *Store) setSettings(settings models.Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	if s.kv == nil {
		return
	}
	if err := s.kv.SaveSettings(settings); err != nil {
		s.log.Warn("write settings mirror", "err", err)
	}
}
