// ABOUTME: Settings mirror and last-backup metadata kept in the side store.
// ABOUTME: The mirror is a startup cache of the settings row, never the source of truth.
package kvstore

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/harperreed/fitnotes/internal/models"
)

const (
	settingsKey   = "fitnotes-settings"
	lastBackupKey = "fitnotes-last-backup"
)

// SaveSettings writes the settings mirror.
func (s *Store) SaveSettings(settings models.Settings) error {
	return s.put(settingsKey, settings)
}

// LoadSettings returns the mirrored settings, or nil if none are stored.
func (s *Store) LoadSettings() (*models.Settings, error) {
	var settings models.Settings
	ok, err := s.get(settingsKey, &settings)
	if err != nil || !ok {
		return nil, err
	}
	return &settings, nil
}

// BackupInfo describes the most recent backup export.
type BackupInfo struct {
	Timestamp    time.Time `json:"timestamp"`
	Size         int64     `json:"size"`
	Workouts     int       `json:"workouts"`
	Exercises    int       `json:"exercises"`
	Measurements int       `json:"measurements"`
}

// HumanSize formats the backup size, e.g. "12 kB".
func (b BackupInfo) HumanSize() string {
	return humanize.Bytes(uint64(b.Size))
}

// Age formats how long ago the backup was taken, e.g. "3 days ago".
func (b BackupInfo) Age() string {
	return humanize.Time(b.Timestamp)
}

// SaveLastBackup records metadata about a completed export.
func (s *Store) SaveLastBackup(info BackupInfo) error {
	return s.put(lastBackupKey, info)
}

// LastBackup returns the last export's metadata, or nil if none.
func (s *Store) LastBackup() (*BackupInfo, error) {
	var info BackupInfo
	ok, err := s.get(lastBackupKey, &info)
	if err != nil || !ok {
		return nil, err
	}
	return &info, nil
}

// ClearLastBackup removes the last-backup metadata.
func (s *Store) ClearLastBackup() error {
	return s.delete(lastBackupKey)
}
