// ABOUTME: CSV export and best-effort bulk import of workout sets.
// ABOUTME: Import reconciles exercises and categories by name and skips duplicate sets.
package csvcodec

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitnotes/internal/kvstore"
	"github.com/harperreed/fitnotes/internal/logger"
	"github.com/harperreed/fitnotes/internal/storage"
)

// Header is the column row written on export.
var Header = []string{"Date", "ExerciseId", "Exercise", "Category", "Weight", "Reps", "Distance", "TimeSec", "Note"}

const (
	// unknownExercise is the name older exports wrote for orphaned
	// references. Orphans are now exported with an empty name.
	unknownExercise     = "Unknown Exercise"
	placeholderExercise = "Imported Exercise"
	importedCategory    = "Imported"
)

// Codec reads and writes the CSV set format. The side store is optional
// and only receives the settings mirror after an import.
type Codec struct {
	repo storage.Repository
	kv   *kvstore.Store
	log  *log.Logger
	now  func() time.Time
}

// New returns a codec over repo.
func New(repo storage.Repository, kv *kvstore.Store, l *log.Logger) *Codec {
	return &Codec{repo: repo, kv: kv, log: logger.OrDiscard(l), now: time.Now}
}
