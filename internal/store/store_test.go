// ABOUTME: Tests for entity store operations.
// ABOUTME: Covers nested workout mutation, replica reads, routines, settings and reset.
package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/harperreed/fitnotes/internal/kvstore"
	"github.com/harperreed/fitnotes/internal/models"
	"github.com/harperreed/fitnotes/internal/storage"
)

func openTestDeps(t *testing.T) (*storage.DB, *kvstore.Store) {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "fitnotes.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	kv, err := kvstore.OpenInMemory(nil)
	if err != nil {
		t.Fatalf("Failed to open kv store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	return db, kv
}

func setupTestStore(t *testing.T) (*Store, *kvstore.Store) {
	t.Helper()

	db, kv := openTestDeps(t)
	s := New(db, kv, nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return s, kv
}

func addExercise(t *testing.T, s *Store, name string, typ models.ExerciseType) int64 {
	t.Helper()
	id, err := s.AddExercise(context.Background(), models.NewExercise(name, "Chest", typ))
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	return id
}

func createWorkout(t *testing.T, s *Store, date string, exercises ...models.WorkoutExercise) int64 {
	t.Helper()
	id, err := s.CreateWorkout(context.Background(), date, exercises...)
	if err != nil {
		t.Fatalf("CreateWorkout(%s) failed: %v", date, err)
	}
	return id
}

func TestCreateWorkoutAndReplica(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	id := createWorkout(t, s, "2024-03-01")

	w, ok := s.GetWorkoutByDate("2024-03-01")
	if !ok {
		t.Fatal("workout missing from replica")
	}
	if w.ID != id || len(w.Exercises) != 0 {
		t.Errorf("unexpected workout: %+v", w)
	}

	if _, err := s.CreateWorkout(ctx, "2024-03-01"); !errors.Is(err, storage.ErrDuplicateDate) {
		t.Errorf("expected ErrDuplicateDate, got %v", err)
	}
	if _, err := s.CreateWorkout(ctx, "March 1"); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestAddExerciseToWorkoutIsIdempotent(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	wid := createWorkout(t, s, "2024-03-01")
	for i := 0; i < 2; i++ {
		if err := s.AddExerciseToWorkout(ctx, wid, 7); err != nil {
			t.Fatalf("AddExerciseToWorkout failed: %v", err)
		}
	}

	w, err := s.GetWorkout(ctx, wid)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if len(w.Exercises) != 1 || w.Exercises[0].ExerciseID != 7 {
		t.Errorf("unexpected entries: %+v", w.Exercises)
	}

	if err := s.AddExerciseToWorkout(ctx, 999, 7); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("expected ErrWorkoutNotFound, got %v", err)
	}
}

func TestAddSetToEmptyWorkoutCreatesEntry(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	bench := addExercise(t, s, "Bench Press", models.TypeWeightReps)

	wid := createWorkout(t, s, "2024-01-15")
	set, err := s.AddSetToExercise(ctx, wid, bench, models.WeightReps{Weight: 100, Reps: 5}, "")
	if err != nil {
		t.Fatalf("AddSetToExercise failed: %v", err)
	}
	if set.ID == "" {
		t.Error("expected generated set ID")
	}

	w, err := s.GetWorkout(ctx, wid)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if len(w.Exercises) != 1 || w.Exercises[0].ExerciseID != bench {
		t.Fatalf("unexpected entries: %+v", w.Exercises)
	}
	sets := w.Exercises[0].Sets
	if len(sets) != 1 {
		t.Fatalf("expected 1 set, got %d", len(sets))
	}
	if sets[0].ID != set.ID || *sets[0].Weight != 100 || *sets[0].Reps != 5 {
		t.Errorf("unexpected set: %+v", sets[0])
	}

	if _, err := s.AddSetToExercise(ctx, wid, bench, models.WeightReps{Weight: 105, Reps: 5}, ""); err != nil {
		t.Fatalf("second AddSetToExercise failed: %v", err)
	}
	replica, _ := s.GetWorkoutByDate("2024-01-15")
	if len(replica.Exercises) != 1 || len(replica.Exercises[0].Sets) != 2 {
		t.Errorf("expected one entry with 2 sets, got %+v", replica.Exercises)
	}
}

func TestAddSetToExercise(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	bench := addExercise(t, s, "Bench Press", models.TypeWeightReps)

	wid := createWorkout(t, s, "2024-03-01", models.WorkoutExercise{ExerciseID: bench})

	set, err := s.AddSetToExercise(ctx, wid, bench, models.WeightReps{Weight: 80, Reps: 8}, "")
	if err != nil {
		t.Fatalf("AddSetToExercise failed: %v", err)
	}

	w, ok := s.GetWorkoutByDate("2024-03-01")
	if !ok {
		t.Fatal("workout missing from replica")
	}
	if len(w.Exercises[0].Sets) != 1 || w.Exercises[0].Sets[0].ID != set.ID {
		t.Errorf("unexpected sets: %+v", w.Exercises[0].Sets)
	}

	t.Run("missing workout", func(t *testing.T) {
		_, err := s.AddSetToExercise(ctx, 999, bench, models.WeightReps{Weight: 80, Reps: 8}, "")
		if !errors.Is(err, ErrWorkoutNotFound) || !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrWorkoutNotFound, got %v", err)
		}
	})

	t.Run("uncatalogued exercise", func(t *testing.T) {
		if _, err := s.AddSetToExercise(ctx, wid, 12345, models.RepsOnly{Reps: 8}, ""); err != nil {
			t.Fatalf("AddSetToExercise failed: %v", err)
		}
		w, _ := s.GetWorkout(ctx, wid)
		entry := w.Exercise(12345)
		if entry == nil || len(entry.Sets) != 1 {
			t.Errorf("expected a new entry with one set, got %+v", w.Exercises)
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := s.AddSetToExercise(ctx, wid, bench, models.TimeOnly{TimeSec: 30}, "")
		if !errors.Is(err, ErrSetTypeMismatch) {
			t.Errorf("expected ErrSetTypeMismatch, got %v", err)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := s.AddSetToExercise(ctx, wid, bench, models.WeightReps{Weight: 80, Reps: 0}, "")
		if !errors.Is(err, models.ErrSetValues) {
			t.Errorf("expected ErrSetValues, got %v", err)
		}
	})
}

func TestUpdateAndDeleteSet(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	bench := addExercise(t, s, "Bench Press", models.TypeWeightReps)

	wid := createWorkout(t, s, "2024-03-01", models.WorkoutExercise{ExerciseID: bench})
	set, err := s.AddSetToExercise(ctx, wid, bench, models.WeightReps{Weight: 80, Reps: 8}, "")
	if err != nil {
		t.Fatalf("AddSetToExercise failed: %v", err)
	}

	reps := 10
	if err := s.UpdateSet(ctx, wid, bench, set.ID, models.SetPatch{Reps: &reps}); err != nil {
		t.Fatalf("UpdateSet failed: %v", err)
	}
	w, _ := s.GetWorkoutByDate("2024-03-01")
	if got := *w.Exercises[0].Sets[0].Reps; got != 10 {
		t.Errorf("Reps = %d, want 10", got)
	}

	// unknown triples are silent no-ops
	if err := s.UpdateSet(ctx, wid, bench, "nope", models.SetPatch{Reps: &reps}); err != nil {
		t.Errorf("UpdateSet with unknown set: %v", err)
	}
	if err := s.UpdateSet(ctx, wid, 4242, set.ID, models.SetPatch{Reps: &reps}); err != nil {
		t.Errorf("UpdateSet with unknown exercise: %v", err)
	}
	if err := s.DeleteSet(ctx, wid, bench, "nope"); err != nil {
		t.Errorf("DeleteSet with unknown set: %v", err)
	}

	if err := s.DeleteSet(ctx, wid, bench, set.ID); err != nil {
		t.Fatalf("DeleteSet failed: %v", err)
	}
	w, _ = s.GetWorkoutByDate("2024-03-01")
	if len(w.Exercises[0].Sets) != 0 {
		t.Errorf("expected no sets, got %+v", w.Exercises[0].Sets)
	}
}

func TestRemoveExerciseKeepsCatalog(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	bench := addExercise(t, s, "Bench Press", models.TypeWeightReps)

	wid := createWorkout(t, s, "2024-03-01", models.WorkoutExercise{ExerciseID: bench}, models.WorkoutExercise{ExerciseID: 99})

	if err := s.RemoveExerciseFromWorkout(ctx, wid, bench); err != nil {
		t.Fatalf("RemoveExerciseFromWorkout failed: %v", err)
	}

	w, err := s.GetWorkout(ctx, wid)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if len(w.Exercises) != 1 || w.Exercises[0].ExerciseID != 99 {
		t.Errorf("unexpected entries: %+v", w.Exercises)
	}

	if _, ok := s.Exercise(bench); !ok {
		t.Error("catalog exercise must survive")
	}
	if got := s.ExerciseName(99); got != UnknownExerciseName {
		t.Errorf("ExerciseName(99) = %q, want %q", got, UnknownExerciseName)
	}
}

func TestConcurrentAddSetNoLostUpdates(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	wid := createWorkout(t, s, "2024-03-01", models.WorkoutExercise{ExerciseID: 1})

	const n = 5
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AddSetToExercise(ctx, wid, 1, models.RepsOnly{Reps: 10}, ""); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("AddSetToExercise failed: %v", err)
	}

	w, err := s.GetWorkout(ctx, wid)
	if err != nil {
		t.Fatalf("GetWorkout failed: %v", err)
	}
	if got := len(w.Exercises[0].Sets); got != n {
		t.Errorf("sets = %d, want %d", got, n)
	}
}

func TestGetWorkoutDates(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	for _, d := range []string{"2024-03-05", "2024-03-01", "2024-02-10"} {
		createWorkout(t, s, d)
	}
	if got, want := s.GetWorkoutDates(), []string{"2024-02-10", "2024-03-01", "2024-03-05"}; !reflect.DeepEqual(got, want) {
		t.Errorf("GetWorkoutDates = %v, want %v", got, want)
	}

	w, _ := s.GetWorkoutByDate("2024-03-01")
	if err := s.DeleteWorkout(ctx, w.ID); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}
	if got, want := s.GetWorkoutDates(), []string{"2024-02-10", "2024-03-05"}; !reflect.DeepEqual(got, want) {
		t.Errorf("GetWorkoutDates after delete = %v, want %v", got, want)
	}
	if err := s.DeleteWorkout(ctx, w.ID); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("expected ErrWorkoutNotFound, got %v", err)
	}
}

func TestFilterExercises(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	for _, e := range []*models.Exercise{
		models.NewExercise("Bench Press", "Chest", models.TypeWeightReps),
		models.NewExercise("Squat", "Legs", models.TypeWeightReps),
		models.NewExercise("Sled Push", "Legs", models.TypeDistanceTime).AsCustom(),
	} {
		if _, err := s.AddExercise(ctx, e); err != nil {
			t.Fatalf("AddExercise failed: %v", err)
		}
	}

	tests := []struct {
		query, category string
		want            int
	}{
		{"", CategoryAll, 3},
		{"", "legs", 2},
		{"", CategoryCustom, 1},
		{"PRESS", "", 1},
	}
	for _, tt := range tests {
		if got := len(s.FilterExercises(tt.query, tt.category)); got != tt.want {
			t.Errorf("FilterExercises(%q, %q) = %d results, want %d", tt.query, tt.category, got, tt.want)
		}
	}
	if got, want := s.Categories(), []string{"Chest", "Legs"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}

	if _, err := s.AddExercise(ctx, models.NewExercise("", "Legs", models.TypeWeightReps)); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for empty name, got %v", err)
	}
}

func TestPersonalBests(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()
	bench := addExercise(t, s, "Bench Press", models.TypeWeightReps)

	for date, v := range map[string]models.WeightReps{
		"2024-03-01": {Weight: 100, Reps: 5},
		"2024-03-08": {Weight: 90, Reps: 12},
	} {
		wid := createWorkout(t, s, date)
		if _, err := s.AddSetToExercise(ctx, wid, bench, v, ""); err != nil {
			t.Fatalf("AddSetToExercise failed: %v", err)
		}
	}

	b := s.PersonalBests(bench)
	if b.OneRepMax != 126 || b.OneRepMaxDate != "2024-03-08" {
		t.Errorf("one rep max = %v on %s, want 126 on 2024-03-08", b.OneRepMax, b.OneRepMaxDate)
	}
	if b.Reps != 12 {
		t.Errorf("Reps = %d, want 12", b.Reps)
	}
}

func TestStartRoutine(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	rid, err := s.AddRoutine(ctx, models.NewRoutine("Push", 1, 2, 2))
	if err != nil {
		t.Fatalf("AddRoutine failed: %v", err)
	}

	w, err := s.StartRoutine(ctx, rid, "2024-03-01")
	if err != nil {
		t.Fatalf("StartRoutine failed: %v", err)
	}
	if len(w.Exercises) != 2 || len(w.Exercises[0].Sets) != 0 {
		t.Errorf("unexpected entries: %+v", w.Exercises)
	}

	other, err := s.AddRoutine(ctx, models.NewRoutine("Pull", 2, 3))
	if err != nil {
		t.Fatalf("AddRoutine failed: %v", err)
	}
	w, err = s.StartRoutine(ctx, other, "2024-03-01")
	if err != nil {
		t.Fatalf("StartRoutine failed: %v", err)
	}
	if len(w.Exercises) != 3 {
		t.Errorf("expected 3 entries after merge, got %d", len(w.Exercises))
	}
	if got := len(s.GetWorkoutDates()); got != 1 {
		t.Errorf("workout dates = %d, want 1", got)
	}

	if _, err := s.StartRoutine(ctx, 999, "2024-03-02"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNewReadsSettingsMirrorBeforeLoad(t *testing.T) {
	db, kv := openTestDeps(t)

	cached := models.DefaultSettings()
	cached.Theme = models.ThemeLight
	if err := kv.SaveSettings(cached); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	s := New(db, kv, nil)
	if got := s.Settings().Theme; got != models.ThemeLight {
		t.Errorf("Theme before Load = %q, want light from the mirror", got)
	}

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := s.Settings().Theme; got != models.ThemeDark {
		t.Errorf("Theme after Load = %q, want dark from the settings row", got)
	}
	mirror, err := kv.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if mirror == nil || mirror.Theme != models.ThemeDark {
		t.Errorf("mirror = %+v, want it refreshed from the row", mirror)
	}
}

func TestSettingsUpdateWritesMirror(t *testing.T) {
	s, kv := setupTestStore(t)
	ctx := context.Background()

	mirror, err := kv.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if mirror == nil || *mirror != models.DefaultSettings() {
		t.Fatalf("mirror = %+v, want defaults", mirror)
	}

	units := models.UnitsImperial
	got, err := s.UpdateSettings(ctx, models.SettingsPatch{Units: &units})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if got.Units != models.UnitsImperial {
		t.Errorf("Units = %q, want imperial", got.Units)
	}

	mirror, err = kv.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if mirror == nil || *mirror != got {
		t.Errorf("mirror = %+v, want %+v", mirror, got)
	}

	bad := "neon"
	if _, err := s.UpdateSettings(ctx, models.SettingsPatch{Theme: &bad}); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestUpdateSettingsRepairsMissingRow(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	if err := s.Repository().Conn().ClearSettings(ctx); err != nil {
		t.Fatalf("ClearSettings failed: %v", err)
	}

	inc := 5.0
	got, err := s.UpdateSettings(ctx, models.SettingsPatch{WeightIncrement: &inc})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if got.WeightIncrement != 5 || got.Theme != models.ThemeDark {
		t.Errorf("unexpected settings: %+v", got)
	}
}

func TestResetData(t *testing.T) {
	s, kv := setupTestStore(t)
	ctx := context.Background()

	addExercise(t, s, "Bench Press", models.TypeWeightReps)
	createWorkout(t, s, "2024-03-01")
	if _, err := s.AddMeasurement(ctx, models.NewMeasurement(models.MeasureWeight, 80)); err != nil {
		t.Fatalf("AddMeasurement failed: %v", err)
	}
	if _, err := s.AddRoutine(ctx, models.NewRoutine("Push")); err != nil {
		t.Fatalf("AddRoutine failed: %v", err)
	}
	if err := kv.MarkGuard(); err != nil {
		t.Fatalf("MarkGuard failed: %v", err)
	}

	if err := s.ResetData(ctx); err != nil {
		t.Fatalf("ResetData failed: %v", err)
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if counts != (storage.Counts{}) {
		t.Errorf("counts = %+v, want empty", counts)
	}
	if len(s.Workouts()) != 0 || len(s.Exercises()) != 0 {
		t.Error("replica should be empty after reset")
	}

	settings, err := s.Repository().Conn().GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if !settings.SeedingDone || settings.Theme != models.ThemeDark {
		t.Errorf("unexpected settings after reset: %+v", settings)
	}

	has, err := kv.HasGuard()
	if err != nil {
		t.Fatalf("HasGuard failed: %v", err)
	}
	if !has {
		t.Error("reset must not touch the guard")
	}
}

func TestMeasurementValidation(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	if _, err := s.AddMeasurement(ctx, &models.Measurement{Type: "height", Value: 180, Date: "2024-03-01"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown type, got %v", err)
	}
	if _, err := s.AddMeasurement(ctx, models.NewMeasurement(models.MeasureWaist, 82).WithDate("2024-13-01")); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid for bad date, got %v", err)
	}

	id, err := s.AddMeasurement(ctx, models.NewMeasurement(models.MeasureWaist, 82).WithDate("2024-03-01"))
	if err != nil {
		t.Fatalf("AddMeasurement failed: %v", err)
	}
	list, err := s.ListMeasurements(ctx, nil)
	if err != nil {
		t.Fatalf("ListMeasurements failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Errorf("unexpected measurements: %+v", list)
	}
}
