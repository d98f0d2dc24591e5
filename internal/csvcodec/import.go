// ABOUTME: Best-effort CSV import with exercise and category reconciliation.
// ABOUTME: Row problems are collected in the summary and never abort the import.
package csvcodec

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/fitnotes/internal/models"
	"github.com/harperreed/fitnotes/internal/storage"
)

// Summary reports what an import did.
type Summary struct {
	CreatedExercises  int      `json:"createdExercises"`
	SetsAdded         int      `json:"setsAdded"`
	DuplicatesSkipped int      `json:"duplicatesSkipped"`
	CategoriesMatched int      `json:"categoriesMatched"`
	CategoriesCreated int      `json:"categoriesCreated"`
	Errors            []string `json:"errors"`
}

type row struct {
	date       string
	exerciseID int64
	name       string
	category   string
	set        models.Set
}

// importer holds the lookup state for one import run.
type importer struct {
	c          *Codec
	conn       *storage.Conn
	byID       map[int64]models.Exercise
	byName     map[string]models.Exercise
	categories map[string]string
	workouts   map[string]int64
	sum        Summary
}

// Import reads rows from r and adds each as a set. It returns an error only
// when the file itself cannot be read; everything else lands in
// Summary.Errors.
func (c *Codec) Import(ctx context.Context, r io.Reader) (Summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Summary{Errors: []string{}}, errors.New("csv: missing header row")
	}
	if err != nil {
		return Summary{Errors: []string{}}, fmt.Errorf("csv header: %w", err)
	}
	cols := indexColumns(header)
	if _, ok := cols["date"]; !ok {
		return Summary{Errors: []string{}}, errors.New("csv: header has no Date column")
	}

	im, err := c.newImporter(ctx)
	if err != nil {
		return Summary{Errors: []string{}}, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return im.sum, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				im.fail(perr.Line, "%v", perr.Err)
				continue
			}
			return im.sum, fmt.Errorf("read csv: %w", err)
		}
		if blank(record) {
			continue
		}
		line, _ := cr.FieldPos(0)
		rw, err := parseRow(record, cols)
		if err != nil {
			im.fail(line, "%v", err)
			continue
		}
		if err := im.apply(ctx, rw); err != nil {
			im.fail(line, "%v", err)
		}
	}

	if err := c.markSeeded(ctx); err != nil {
		return im.sum, err
	}
	c.log.Info("csv import finished",
		"sets", im.sum.SetsAdded,
		"duplicates", im.sum.DuplicatesSkipped,
		"exercises", im.sum.CreatedExercises,
		"errors", len(im.sum.Errors))
	return im.sum, nil
}

func (c *Codec) newImporter(ctx context.Context) (*importer, error) {
	conn := c.repo.Conn()
	im := &importer{
		c:          c,
		conn:       conn,
		byID:       make(map[int64]models.Exercise),
		byName:     make(map[string]models.Exercise),
		categories: make(map[string]string),
		workouts:   make(map[string]int64),
		sum:        Summary{Errors: []string{}},
	}

	exercises, err := conn.ListExercises(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range exercises {
		im.remember(e)
	}

	workouts, err := conn.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range workouts {
		im.workouts[w.Date] = w.ID
	}
	return im, nil
}

func (im *importer) fail(line int, format string, args ...any) {
	im.sum.Errors = append(im.sum.Errors, fmt.Sprintf("row %d: %s", line, fmt.Sprintf(format, args...)))
}

func (im *importer) remember(e models.Exercise) {
	im.byID[e.ID] = e
	key := models.ExerciseNameKey(e.Name)
	if _, ok := im.byName[key]; !ok {
		im.byName[key] = e
	}
	if norm := models.NormalizeCategory(e.Category); norm != "" {
		if _, ok := im.categories[norm]; !ok {
			im.categories[norm] = e.Category
		}
	}
}

func (im *importer) apply(ctx context.Context, rw row) error {
	exerciseID, ok, err := im.orphanEntry(ctx, rw)
	if err != nil {
		return err
	}
	if !ok {
		category := im.resolveCategory(rw.category)
		exerciseID, err = im.resolveExercise(ctx, rw, category)
		if err != nil {
			return err
		}
	}

	workoutID, err := im.resolveWorkout(ctx, rw.date)
	if err != nil {
		return err
	}

	set := rw.set
	set.ID = uuid.NewString()
	set.CreatedAt = im.c.now().UTC()

	var duplicate bool
	_, err = im.c.repo.MutateWorkout(ctx, workoutID, func(w *models.Workout) (bool, error) {
		duplicate = false
		entry := w.Exercise(exerciseID)
		if entry == nil {
			w.Exercises = append(w.Exercises, models.WorkoutExercise{ExerciseID: exerciseID, Sets: []models.Set{set}})
			return true, nil
		}
		for _, existing := range entry.Sets {
			if existing.SameValues(set) {
				duplicate = true
				return false, nil
			}
		}
		entry.Sets = append(entry.Sets, set)
		return true, nil
	})
	if err != nil {
		return err
	}
	if duplicate {
		im.sum.DuplicatesSkipped++
	} else {
		im.sum.SetsAdded++
	}
	return nil
}

// resolveCategory returns the display form for raw, registering it when
// it has not been seen. An empty category resolves to "".
func (im *importer) resolveCategory(raw string) string {
	norm := models.NormalizeCategory(raw)
	if norm == "" {
		return ""
	}
	if display, ok := im.categories[norm]; ok {
		im.sum.CategoriesMatched++
		return display
	}
	display := models.CategoryDisplayName(raw)
	im.categories[norm] = display
	im.sum.CategoriesCreated++
	return display
}

// orphanEntry reports whether rw refers to an exercise id missing from the
// catalog that the workout on rw's date already holds an entry for. Such a
// row attaches to that entry instead of creating a placeholder exercise.
func (im *importer) orphanEntry(ctx context.Context, rw row) (int64, bool, error) {
	if rw.exerciseID <= 0 {
		return 0, false, nil
	}
	if _, known := im.byID[rw.exerciseID]; known {
		return 0, false, nil
	}
	if key := models.ExerciseNameKey(rw.name); key != "" && key != models.ExerciseNameKey(unknownExercise) {
		return 0, false, nil
	}
	workoutID, ok := im.workouts[rw.date]
	if !ok {
		return 0, false, nil
	}
	w, err := im.conn.GetWorkout(ctx, workoutID)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if w.Exercise(rw.exerciseID) == nil {
		return 0, false, nil
	}
	return rw.exerciseID, true, nil
}

func (im *importer) resolveExercise(ctx context.Context, rw row, category string) (int64, error) {
	// An id wins unless the row also names a different exercise, which
	// happens when a file exported elsewhere is imported here.
	if rw.exerciseID > 0 {
		if e, ok := im.byID[rw.exerciseID]; ok && (rw.name == "" || models.ExerciseNameKey(e.Name) == models.ExerciseNameKey(rw.name)) {
			return e.ID, nil
		}
	}
	name := rw.name
	if name == "" {
		name = placeholderExercise
	}
	if e, ok := im.lookupName(ctx, name); ok {
		return e.ID, nil
	}
	if category == "" {
		category = importedCategory
	}
	e := models.NewExercise(name, category, models.TypeWeightReps).AsCustom()
	id, err := im.conn.AddExercise(ctx, e)
	if err != nil {
		return 0, err
	}
	im.remember(*e)
	im.sum.CreatedExercises++
	return id, nil
}

func (im *importer) lookupName(ctx context.Context, name string) (models.Exercise, bool) {
	if e, ok := im.byName[models.ExerciseNameKey(name)]; ok {
		return e, true
	}
	e, err := im.conn.FindExerciseByName(ctx, name)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			im.c.log.Debug("exercise lookup failed", "name", name, "err", err)
		}
		return models.Exercise{}, false
	}
	im.remember(*e)
	return *e, true
}

func (im *importer) resolveWorkout(ctx context.Context, date string) (int64, error) {
	if id, ok := im.workouts[date]; ok {
		return id, nil
	}
	id, err := im.conn.AddWorkout(ctx, models.NewWorkout(date))
	if errors.Is(err, storage.ErrDuplicateDate) {
		w, gerr := im.conn.GetWorkoutByDate(ctx, date)
		if gerr != nil {
			return 0, gerr
		}
		id, err = w.ID, nil
	}
	if err != nil {
		return 0, err
	}
	im.workouts[date] = id
	return id, nil
}

// markSeeded records that the store holds user data so first-run seeding
// never runs over it.
func (c *Codec) markSeeded(ctx context.Context) error {
	s, err := c.repo.UpdateSettings(ctx, models.SettingsPatch{MarkSeeded: true})
	if err != nil {
		return fmt.Errorf("mark seeded: %w", err)
	}
	if c.kv != nil {
		if err := c.kv.SaveSettings(*s); err != nil {
			c.log.Warn("failed to mirror settings", "err", err)
		}
	}
	return nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := cols[key]; !ok {
			cols[key] = i
		}
	}
	return cols
}

func parseRow(record []string, cols map[string]int) (row, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rw := row{
		date:     get("date"),
		name:     get("exercise"),
		category: get("category"),
	}
	if rw.date == "" {
		return rw, errors.New("missing date")
	}
	if !models.ValidDate(rw.date) {
		return rw, fmt.Errorf("invalid date %q", rw.date)
	}
	if id := get("exerciseid"); id != "" {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			rw.exerciseID = n
		}
	}

	var err error
	if rw.set.Weight, err = parseFloat("Weight", get("weight")); err != nil {
		return rw, err
	}
	if rw.set.Reps, err = parseInt("Reps", get("reps")); err != nil {
		return rw, err
	}
	if rw.set.Distance, err = parseFloat("Distance", get("distance")); err != nil {
		return rw, err
	}
	if rw.set.TimeSec, err = parseInt("TimeSec", get("timesec")); err != nil {
		return rw, err
	}
	rw.set.Note = get("note")
	return rw, nil
}

func parseFloat(column, s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%s: not a number: %q", column, s)
	}
	return &v, nil
}

func parseInt(column, s string) (*int, error) {
	f, err := parseFloat(column, s)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != math.Trunc(*f) {
		return nil, fmt.Errorf("%s: not a whole number: %q", column, s)
	}
	v := int(*f)
	return &v, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
