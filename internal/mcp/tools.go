// ABOUTME: MCP tool implementations for workouts, sets, exercises and measurements.
// ABOUTME: Also exposes routine start, JSON backup export and CSV import.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fitnotes/internal/csvcodec"
	"github.com/harperreed/fitnotes/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workouts, newest first, optionally within a date range",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with its exercises and sets, by ID or date",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_workout",
		Description: "Create an empty workout for a date (one workout per date)",
	}, s.handleCreateWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise_to_workout",
		Description: "Add an exercise to a workout; adding it twice has no effect",
	}, s.handleAddExerciseToWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Record a set for an exercise in a workout. Which values are required depends on the exercise type",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_set",
		Description: "Delete a set from a workout exercise",
	}, s.handleDeleteSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List catalog exercises, optionally filtered by name and category",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add a custom exercise to the catalog",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_measurement",
		Description: "Record a body measurement (weight, body_fat, waist, etc.)",
	}, s.handleAddMeasurement)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_measurements",
		Description: "List body measurements, newest first, optionally by type",
	}, s.handleListMeasurements)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_routine",
		Description: "Start a routine: put its exercises into the workout for a date",
	}, s.handleStartRoutine)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_backup",
		Description: "Export every record as a versioned JSON backup",
	}, s.handleExportBackup)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "import_csv",
		Description: "Import sets from CSV text (Date,ExerciseId,Exercise,Category,Weight,Reps,Distance,TimeSec,Note)",
	}, s.handleImportCSV)
}

// Tool input/output types

type listWorkoutsInput struct {
	From  string `json:"from,omitempty" jsonschema:"Earliest date (YYYY-MM-DD)"`
	To    string `json:"to,omitempty" jsonschema:"Latest date (YYYY-MM-DD)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type workoutSummary struct {
	ID        int64    `json:"id"`
	Date      string   `json:"date"`
	Exercises []string `json:"exercises"`
	Sets      int      `json:"sets"`
}

type listWorkoutsOutput struct {
	Workouts []workoutSummary `json:"workouts"`
	Message  string           `json:"message,omitempty"`
}

type getWorkoutInput struct {
	ID   int64  `json:"id,omitempty" jsonschema:"Workout ID"`
	Date string `json:"date,omitempty" jsonschema:"Workout date (YYYY-MM-DD), used when no ID is given"`
}

type setOutput struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Weight   *float64 `json:"weight,omitempty"`
	Reps     *int     `json:"reps,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
	TimeSec  *int     `json:"time_sec,omitempty"`
	Note     string   `json:"note,omitempty"`
}

type workoutExerciseOutput struct {
	ExerciseID int64       `json:"exercise_id"`
	Name       string      `json:"name"`
	Sets       []setOutput `json:"sets"`
}

type workoutOutput struct {
	ID        int64                   `json:"id"`
	Date      string                  `json:"date"`
	Exercises []workoutExerciseOutput `json:"exercises"`
}

type createWorkoutInput struct {
	Date string `json:"date,omitempty" jsonschema:"Workout date (YYYY-MM-DD), defaults to today"`
}

type idOutput struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type workoutExerciseInput struct {
	WorkoutID  int64 `json:"workout_id" jsonschema:"Workout ID"`
	ExerciseID int64 `json:"exercise_id" jsonschema:"Exercise ID"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type addSetInput struct {
	WorkoutID  int64    `json:"workout_id" jsonschema:"Workout ID"`
	ExerciseID int64    `json:"exercise_id" jsonschema:"Exercise ID; the exercise must already be in the workout"`
	Weight     *float64 `json:"weight,omitempty" jsonschema:"Weight in kg (weight_reps, or added weight for bodyweight)"`
	Reps       *int     `json:"reps,omitempty" jsonschema:"Repetitions"`
	Distance   *float64 `json:"distance,omitempty" jsonschema:"Distance in meters (distance_time)"`
	TimeSec    *int     `json:"time_sec,omitempty" jsonschema:"Duration in seconds"`
	Note       string   `json:"note,omitempty" jsonschema:"Optional note"`
}

type addSetOutput struct {
	Set     setOutput `json:"set"`
	Message string    `json:"message"`
}

type deleteSetInput struct {
	WorkoutID  int64  `json:"workout_id" jsonschema:"Workout ID"`
	ExerciseID int64  `json:"exercise_id" jsonschema:"Exercise ID"`
	SetID      string `json:"set_id" jsonschema:"Set ID"`
}

type listExercisesInput struct {
	Query    string `json:"query,omitempty" jsonschema:"Case-insensitive name filter"`
	Category string `json:"category,omitempty" jsonschema:"Category name, All, or Custom"`
}

type listExercisesOutput struct {
	Exercises []models.Exercise `json:"exercises"`
}

type addExerciseInput struct {
	Name     string `json:"name" jsonschema:"Exercise name"`
	Category string `json:"category" jsonschema:"Category, e.g. Chest"`
	Type     string `json:"type,omitempty" jsonschema:"weight_reps (default), distance_time, time_only, reps_only or bodyweight"`
	Notes    string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type addMeasurementInput struct {
	Type  string  `json:"type" jsonschema:"weight, body_fat, muscle_mass, waist, chest, arms or thighs"`
	Value float64 `json:"value" jsonschema:"Measured value"`
	Date  string  `json:"date,omitempty" jsonschema:"Date (YYYY-MM-DD), defaults to today"`
	Notes string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type listMeasurementsInput struct {
	Type  string `json:"type,omitempty" jsonschema:"Filter by measurement type"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listMeasurementsOutput struct {
	Measurements []models.Measurement `json:"measurements"`
}

type startRoutineInput struct {
	RoutineID int64  `json:"routine_id" jsonschema:"Routine ID"`
	Date      string `json:"date,omitempty" jsonschema:"Workout date (YYYY-MM-DD), defaults to today"`
}

type exportBackupInput struct{}

type exportBackupOutput struct {
	Backup string `json:"backup"`
}

type importCSVInput struct {
	Content string `json:"content" jsonschema:"CSV text including the header row"`
}

// Tool handlers

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, listWorkoutsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var workouts []models.Workout
	if input.From != "" || input.To != "" {
		ws, err := s.app.Store.WorkoutsBetween(ctx, input.From, input.To)
		if err != nil {
			return nil, listWorkoutsOutput{}, fmt.Errorf("failed to list workouts: %w", err)
		}
		// WorkoutsBetween is oldest first.
		for i := len(ws) - 1; i >= 0; i-- {
			workouts = append(workouts, ws[i])
		}
	} else {
		workouts = s.app.Store.Workouts()
	}
	if len(workouts) > input.Limit {
		workouts = workouts[:input.Limit]
	}

	out := listWorkoutsOutput{Workouts: []workoutSummary{}}
	for _, w := range workouts {
		sum := workoutSummary{ID: w.ID, Date: w.Date, Exercises: []string{}, Sets: w.SetCount()}
		for _, we := range w.Exercises {
			sum.Exercises = append(sum.Exercises, s.app.Store.ExerciseName(we.ExerciseID))
		}
		out.Workouts = append(out.Workouts, sum)
	}
	if len(out.Workouts) == 0 {
		out.Message = "No workouts found."
	}
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	var w *models.Workout
	var err error
	switch {
	case input.ID != 0:
		w, err = s.app.Store.GetWorkout(ctx, input.ID)
	case input.Date != "":
		w, err = s.app.Store.LoadWorkoutByDate(ctx, input.Date)
	default:
		return nil, workoutOutput{}, errors.New("id or date is required")
	}
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("workout not found: %w", err)
	}
	return nil, s.workoutDetail(w), nil
}

func (s *Server) workoutDetail(w *models.Workout) workoutOutput {
	out := workoutOutput{ID: w.ID, Date: w.Date, Exercises: []workoutExerciseOutput{}}
	for _, we := range w.Exercises {
		entry := workoutExerciseOutput{
			ExerciseID: we.ExerciseID,
			Name:       s.app.Store.ExerciseName(we.ExerciseID),
			Sets:       []setOutput{},
		}
		for _, set := range we.Sets {
			entry.Sets = append(entry.Sets, toSetOutput(set))
		}
		out.Exercises = append(out.Exercises, entry)
	}
	return out
}

func toSetOutput(set models.Set) setOutput {
	return setOutput{
		ID:       set.ID,
		Text:     set.String(),
		Weight:   set.Weight,
		Reps:     set.Reps,
		Distance: set.Distance,
		TimeSec:  set.TimeSec,
		Note:     set.Note,
	}
}

func today() string {
	return time.Now().Format(models.DateLayout)
}

func (s *Server) handleCreateWorkout(ctx context.Context, req *mcp.CallToolRequest, input createWorkoutInput) (*mcp.CallToolResult, idOutput, error) {
	date := input.Date
	if date == "" {
		date = today()
	}
	id, err := s.app.Store.CreateWorkout(ctx, date)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to create workout: %w", err)
	}
	return nil, idOutput{ID: id, Message: fmt.Sprintf("Created workout for %s (ID: %d)", date, id)}, nil
}

func (s *Server) handleAddExerciseToWorkout(ctx context.Context, req *mcp.CallToolRequest, input workoutExerciseInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, ok := s.app.Store.Exercise(input.ExerciseID); !ok {
		return nil, simpleOutput{}, fmt.Errorf("exercise not found: %d", input.ExerciseID)
	}
	if err := s.app.Store.AddExerciseToWorkout(ctx, input.WorkoutID, input.ExerciseID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Added %s to workout %d", s.app.Store.ExerciseName(input.ExerciseID), input.WorkoutID),
	}, nil
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input addSetInput) (*mcp.CallToolResult, addSetOutput, error) {
	e, ok := s.app.Store.Exercise(input.ExerciseID)
	if !ok {
		return nil, addSetOutput{}, fmt.Errorf("exercise not found: %d", input.ExerciseID)
	}
	values, err := models.ParseSetValues(e.Type, input.Weight, input.Distance, input.Reps, input.TimeSec)
	if err != nil {
		return nil, addSetOutput{}, err
	}
	prev := s.app.Store.PersonalBests(e.ID)
	set, err := s.app.Store.AddSetToExercise(ctx, input.WorkoutID, input.ExerciseID, values, input.Note)
	if err != nil {
		return nil, addSetOutput{}, fmt.Errorf("failed to add set: %w", err)
	}

	msg := fmt.Sprintf("Added %s: %s", e.Name, set.String())
	if prev.OneRepMax > 0 && models.IsWeightRepsPR(prev.OneRepMax, set) {
		msg += " (new personal best)"
	}
	return nil, addSetOutput{Set: toSetOutput(set), Message: msg}, nil
}

func (s *Server) handleDeleteSet(ctx context.Context, req *mcp.CallToolRequest, input deleteSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.app.Store.DeleteSet(ctx, input.WorkoutID, input.ExerciseID, input.SetID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete set: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted set %s", input.SetID)}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, listExercisesOutput, error) {
	exercises := s.app.Store.FilterExercises(input.Query, input.Category)
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	return nil, listExercisesOutput{Exercises: exercises}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, idOutput, error) {
	typ := models.TypeWeightReps
	if input.Type != "" {
		if !models.IsValidExerciseType(input.Type) {
			return nil, idOutput{}, fmt.Errorf("unknown exercise type: %s", input.Type)
		}
		typ = models.ExerciseType(input.Type)
	}

	e := models.NewExercise(input.Name, input.Category, typ).WithNotes(input.Notes).AsCustom()
	id, err := s.app.Store.AddExercise(ctx, e)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add exercise: %w", err)
	}
	return nil, idOutput{ID: id, Message: fmt.Sprintf("Added exercise %s (ID: %d)", e.Name, id)}, nil
}

func (s *Server) handleAddMeasurement(ctx context.Context, req *mcp.CallToolRequest, input addMeasurementInput) (*mcp.CallToolResult, idOutput, error) {
	if !models.IsValidMeasurementType(input.Type) {
		return nil, idOutput{}, fmt.Errorf("unknown measurement type: %s", input.Type)
	}
	m := models.NewMeasurement(models.MeasurementType(input.Type), input.Value)
	if input.Date != "" {
		m.WithDate(input.Date)
	}
	if input.Notes != "" {
		m.WithNotes(input.Notes)
	}

	id, err := s.app.Store.AddMeasurement(ctx, m)
	if err != nil {
		return nil, idOutput{}, fmt.Errorf("failed to add measurement: %w", err)
	}
	return nil, idOutput{
		ID:      id,
		Message: fmt.Sprintf("Added %s: %g %s on %s", input.Type, m.Value, m.Unit(), m.Date),
	}, nil
}

func (s *Server) handleListMeasurements(ctx context.Context, req *mcp.CallToolRequest, input listMeasurementsInput) (*mcp.CallToolResult, listMeasurementsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	var mt *models.MeasurementType
	if input.Type != "" {
		if !models.IsValidMeasurementType(input.Type) {
			return nil, listMeasurementsOutput{}, fmt.Errorf("unknown measurement type: %s", input.Type)
		}
		t := models.MeasurementType(input.Type)
		mt = &t
	}

	ms, err := s.app.Store.ListMeasurements(ctx, mt)
	if err != nil {
		return nil, listMeasurementsOutput{}, fmt.Errorf("failed to list measurements: %w", err)
	}
	if len(ms) > input.Limit {
		ms = ms[:input.Limit]
	}
	if ms == nil {
		ms = []models.Measurement{}
	}
	return nil, listMeasurementsOutput{Measurements: ms}, nil
}

func (s *Server) handleStartRoutine(ctx context.Context, req *mcp.CallToolRequest, input startRoutineInput) (*mcp.CallToolResult, workoutOutput, error) {
	date := input.Date
	if date == "" {
		date = today()
	}
	w, err := s.app.Store.StartRoutine(ctx, input.RoutineID, date)
	if err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to start routine: %w", err)
	}
	return nil, s.workoutDetail(w), nil
}

func (s *Server) handleExportBackup(ctx context.Context, req *mcp.CallToolRequest, input exportBackupInput) (*mcp.CallToolResult, exportBackupOutput, error) {
	data, err := s.app.Backup.ExportJSON(ctx)
	if err != nil {
		return nil, exportBackupOutput{}, fmt.Errorf("export failed: %w", err)
	}
	return nil, exportBackupOutput{Backup: string(data)}, nil
}

func (s *Server) handleImportCSV(ctx context.Context, req *mcp.CallToolRequest, input importCSVInput) (*mcp.CallToolResult, csvcodec.Summary, error) {
	sum, err := s.app.CSV.Import(ctx, strings.NewReader(input.Content))
	if err != nil {
		return nil, sum, fmt.Errorf("import failed: %w", err)
	}
	if err := s.app.Reload(ctx); err != nil {
		return nil, sum, fmt.Errorf("reload after import: %w", err)
	}
	return nil, sum, nil
}
