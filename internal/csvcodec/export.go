// ABOUTME: Writes every recorded set as one CSV row.
// ABOUTME: Rows follow workout date order, then exercise and set order.
package csvcodec

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/harperreed/fitnotes/internal/models"
)

// Export writes the header and one row per set.
func (c *Codec) Export(ctx context.Context, w io.Writer) error {
	conn := c.repo.Conn()

	exercises, err := conn.ListExercises(ctx)
	if err != nil {
		return err
	}
	byID := make(map[int64]models.Exercise, len(exercises))
	for _, e := range exercises {
		byID[e.ID] = e
	}

	workouts, err := conn.ListWorkoutsBetween(ctx, "", "")
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, wk := range workouts {
		for _, we := range wk.Exercises {
			// orphaned references keep their id and an empty name
			var name, category string
			if e, ok := byID[we.ExerciseID]; ok {
				name, category = e.Name, e.Category
			}
			for _, s := range we.Sets {
				row := []string{
					wk.Date,
					strconv.FormatInt(we.ExerciseID, 10),
					name,
					category,
					formatFloat(s.Weight),
					formatInt(s.Reps),
					formatFloat(s.Distance),
					formatInt(s.TimeSec),
					s.Note,
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("write row: %w", err)
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
