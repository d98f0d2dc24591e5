// ABOUTME: Whole-store JSON backup export and atomic restore.
// ABOUTME: Restore validates the full document before touching any table.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitnotes/internal/kvstore"
	"github.com/harperreed/fitnotes/internal/logger"
	"github.com/harperreed/fitnotes/internal/models"
	"github.com/harperreed/fitnotes/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Version is the only backup format version this package reads and writes.
const Version = 1

// Document is the serialized form of a full backup.
type Document struct {
	Version      int                  `json:"version" yaml:"version"`
	Workouts     []models.Workout     `json:"workouts" yaml:"workouts"`
	Exercises    []models.Exercise    `json:"exercises" yaml:"exercises"`
	Measurements []models.Measurement `json:"measurements" yaml:"measurements"`
	Routines     []models.Routine     `json:"routines" yaml:"routines"`
	Settings     *models.Settings     `json:"settings" yaml:"settings"`
}

// Result reports the outcome of an import. A non-empty Errors slice means
// nothing was written.
type Result struct {
	Errors []string       `json:"errors"`
	Counts storage.Counts `json:"counts"`
}

// OK reports whether the import applied.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Codec exports and restores backups. The side store is optional.
type Codec struct {
	repo storage.Repository
	kv   *kvstore.Store
	log  *log.Logger
	now  func() time.Time
}

// New returns a codec over repo. kv may be nil.
func New(repo storage.Repository, kv *kvstore.Store, l *log.Logger) *Codec {
	return &Codec{repo: repo, kv: kv, log: logger.OrDiscard(l), now: time.Now}
}

// Export snapshots every collection. Reads run concurrently against the
// pooled connection.
func (c *Codec) Export(ctx context.Context) (*Document, error) {
	doc := &Document{Version: Version}
	conn := c.repo.Conn()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		doc.Workouts, err = conn.ListWorkoutsBetween(gctx, "", "")
		return err
	})
	g.Go(func() (err error) {
		doc.Exercises, err = conn.ListExercises(gctx)
		return err
	})
	g.Go(func() (err error) {
		doc.Measurements, err = conn.ListMeasurements(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		doc.Routines, err = conn.ListRoutines(gctx)
		return err
	})
	g.Go(func() error {
		s, err := conn.GetSettings(gctx)
		if errors.Is(err, storage.ErrNotFound) {
			d := models.DefaultSettings()
			s = &d
		} else if err != nil {
			return err
		}
		doc.Settings = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("export backup: %w", err)
	}
	doc.normalize()
	return doc, nil
}

// normalize replaces nil collections so they encode as empty arrays.
func (d *Document) normalize() {
	if d.Workouts == nil {
		d.Workouts = []models.Workout{}
	}
	if d.Exercises == nil {
		d.Exercises = []models.Exercise{}
	}
	if d.Measurements == nil {
		d.Measurements = []models.Measurement{}
	}
	if d.Routines == nil {
		d.Routines = []models.Routine{}
	}
}

// ExportJSON renders an indented JSON backup and records its metadata as
// the last backup.
func (c *Codec) ExportJSON(ctx context.Context) ([]byte, error) {
	doc, err := c.Export(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	c.recordBackup(doc, len(data))
	return data, nil
}

func (c *Codec) recordBackup(doc *Document, size int) {
	if c.kv == nil {
		return
	}
	info := kvstore.BackupInfo{
		Timestamp:    c.now().UTC(),
		Size:         int64(size),
		Workouts:     len(doc.Workouts),
		Exercises:    len(doc.Exercises),
		Measurements: len(doc.Measurements),
	}
	if err := c.kv.SaveLastBackup(info); err != nil {
		c.log.Warn("failed to save backup metadata", "err", err)
	}
}

// settingsDoc distinguishes absent fields from zero values so a partial
// settings object can be merged over the defaults.
type settingsDoc struct {
	Theme           *string  `json:"theme"`
	Units           *string  `json:"units"`
	WeightIncrement *float64 `json:"weightIncrement"`
	TimerSound      *bool    `json:"timerSound"`
}

func (s *settingsDoc) merge() models.Settings {
	out := models.DefaultSettings()
	if s != nil {
		models.SettingsPatch{
			Theme:           s.Theme,
			Units:           s.Units,
			WeightIncrement: s.WeightIncrement,
			TimerSound:      s.TimerSound,
		}.Apply(&out)
	}
	out.ID = models.SettingsID
	out.SeedingDone = true
	return out
}

type importDoc struct {
	Workouts     []models.Workout     `json:"workouts"`
	Exercises    []models.Exercise    `json:"exercises"`
	Measurements []models.Measurement `json:"measurements"`
	Routines     []models.Routine     `json:"routines"`
	Settings     *settingsDoc         `json:"settings"`
}

// Import replaces all content with the backup in raw. Validation problems
// are returned in Result.Errors with the store unchanged; the error return
// is reserved for storage failures.
func (c *Codec) Import(ctx context.Context, raw []byte) (Result, error) {
	if problems := validateShape(raw); len(problems) > 0 {
		return Result{Errors: problems}, nil
	}

	var doc importDoc
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return Result{Errors: []string{fmt.Sprintf("decode: %v", err)}}, nil
	}
	if problems := checkContent(&doc); len(problems) > 0 {
		return Result{Errors: problems}, nil
	}

	settings := doc.Settings.merge()
	if err := settings.Validate(); err != nil {
		return Result{Errors: []string{fmt.Sprintf("settings: %v", err)}}, nil
	}

	err := c.repo.InTx(ctx, func(tx *storage.Conn) error {
		if err := tx.ClearWorkouts(ctx); err != nil {
			return err
		}
		if err := tx.ClearExercises(ctx); err != nil {
			return err
		}
		if err := tx.ClearMeasurements(ctx); err != nil {
			return err
		}
		if err := tx.ClearRoutines(ctx); err != nil {
			return err
		}
		if err := tx.BulkAddExercises(ctx, doc.Exercises); err != nil {
			return err
		}
		if err := tx.BulkAddWorkouts(ctx, doc.Workouts); err != nil {
			return err
		}
		if err := tx.BulkAddMeasurements(ctx, doc.Measurements); err != nil {
			return err
		}
		if err := tx.BulkAddRoutines(ctx, doc.Routines); err != nil {
			return err
		}
		return tx.PutSettings(ctx, settings)
	})
	if err != nil {
		return Result{}, fmt.Errorf("restore backup: %w", err)
	}

	if c.kv != nil {
		if err := c.kv.ClearLastBackup(); err != nil {
			c.log.Warn("failed to clear backup metadata", "err", err)
		}
		if err := c.kv.SaveSettings(settings); err != nil {
			c.log.Warn("failed to mirror settings", "err", err)
		}
	}

	counts, err := c.repo.Conn().Counts(ctx)
	if err != nil {
		return Result{}, err
	}
	c.log.Info("backup restored", "workouts", counts.Workouts, "exercises", counts.Exercises)
	return Result{Counts: counts}, nil
}

// checkContent enforces what the schemas cannot express.
func checkContent(doc *importDoc) []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	dates := make(map[string]bool)
	ids := make(map[int64]bool)
	for i, w := range doc.Workouts {
		if !models.ValidDate(w.Date) {
			add("workouts[%d]: invalid date %q", i, w.Date)
		} else if dates[w.Date] {
			add("workouts[%d]: duplicate date %s", i, w.Date)
		}
		dates[w.Date] = true
		if w.ID != 0 {
			if ids[w.ID] {
				add("workouts[%d]: duplicate id %d", i, w.ID)
			}
			ids[w.ID] = true
		}
	}

	clear(ids)
	for i, e := range doc.Exercises {
		if e.ID != 0 {
			if ids[e.ID] {
				add("exercises[%d]: duplicate id %d", i, e.ID)
			}
			ids[e.ID] = true
		}
	}

	clear(ids)
	for i, m := range doc.Measurements {
		if !models.ValidDate(m.Date) {
			add("measurements[%d]: invalid date %q", i, m.Date)
		}
		if m.ID != 0 {
			if ids[m.ID] {
				add("measurements[%d]: duplicate id %d", i, m.ID)
			}
			ids[m.ID] = true
		}
	}

	clear(ids)
	for i, r := range doc.Routines {
		if r.ID != 0 {
			if ids[r.ID] {
				add("routines[%d]: duplicate id %d", i, r.ID)
			}
			ids[r.ID] = true
		}
	}
	return problems
}
