// ABOUTME: Tests for the badger side store.
// ABOUTME: Covers the guard flag, settings mirror, backup metadata and persistence.
package kvstore

import (
	"testing"
	"time"

	"github.com/harperreed/fitnotes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGuardLifecycle(t *testing.T) {
	s := setupTestStore(t)

	has, err := s.HasGuard()
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, s.MarkGuard())
	has, err = s.HasGuard()
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, s.ClearGuard())
	has, err = s.HasGuard()
	require.NoError(t, err)
	assert.False(t, has)
}

func TestClearGuardWhenAbsent(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.ClearGuard())
}

func TestSettingsMirror(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Nil(t, got)

	want := models.DefaultSettings()
	want.Theme = models.ThemeLight
	want.SeedingDone = true
	require.NoError(t, s.SaveSettings(want))

	got, err = s.LoadSettings()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestLastBackup(t *testing.T) {
	s := setupTestStore(t)

	info := BackupInfo{
		Timestamp: time.Now().Add(-2 * time.Hour).UTC(),
		Size:      12_345,
		Workouts:  3,
		Exercises: 38,
	}
	require.NoError(t, s.SaveLastBackup(info))

	got, err := s.LastBackup()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, info.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, 38, got.Exercises)
	assert.Equal(t, "12 kB", got.HumanSize())
	assert.Equal(t, "2 hours ago", got.Age())
}

func TestGuardPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, s.MarkGuard())
	require.NoError(t, s.Close())

	s, err = Open(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	has, err := s.HasGuard()
	require.NoError(t, err)
	assert.True(t, has)
	assert.False(t, s.Detached())
}

func TestOpenWithFallbackWhenLocked(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir, nil)
	require.NoError(t, err)
	defer first.Close()

	second, err := OpenWithFallback(dir, nil)
	require.NoError(t, err)
	defer second.Close()

	assert.True(t, second.Detached())
	require.NoError(t, second.MarkGuard())
}
