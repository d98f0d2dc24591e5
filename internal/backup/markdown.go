// ABOUTME: Markdown report of workouts and measurements for reading or sharing.
// ABOUTME: Export-only; it is built from the same document as the JSON backup.
package backup

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/fitnotes/internal/models"
)

// ExportMarkdown renders workouts (oldest first) and measurements grouped by
// type. since, when non-empty, drops anything dated before it.
func (c *Codec) ExportMarkdown(ctx context.Context, since string) (string, error) {
	if since != "" && !models.ValidDate(since) {
		return "", fmt.Errorf("invalid since date %q", since)
	}
	doc, err := c.Export(ctx)
	if err != nil {
		return "", err
	}

	names := make(map[int64]string, len(doc.Exercises))
	for _, e := range doc.Exercises {
		names[e.ID] = e.Name
	}

	var sb strings.Builder
	now := c.now()
	sb.WriteString(fmt.Sprintf("# Fitnotes Export - %s\n\n", now.Format(models.DateLayout)))

	var workouts []models.Workout
	for _, w := range doc.Workouts {
		if w.Date >= since {
			workouts = append(workouts, w)
		}
	}
	if len(workouts) > 0 {
		sb.WriteString("## Workouts\n\n")
	}
	for _, w := range workouts {
		sb.WriteString(fmt.Sprintf("### %s\n\n", w.Date))
		if len(w.Exercises) == 0 {
			sb.WriteString("No exercises.\n\n")
			continue
		}
		sb.WriteString("| Exercise | Set | Notes |\n")
		sb.WriteString("|----------|-----|-------|\n")
		for _, we := range w.Exercises {
			name, ok := names[we.ExerciseID]
			if !ok {
				name = "Unknown Exercise"
			}
			if len(we.Sets) == 0 {
				sb.WriteString(fmt.Sprintf("| %s | - | |\n", escapeCell(name)))
			}
			for _, s := range we.Sets {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", escapeCell(name), s.String(), escapeCell(s.Note)))
			}
		}
		sb.WriteString("\n")
	}

	grouped := make(map[models.MeasurementType][]models.Measurement)
	for _, m := range doc.Measurements {
		if m.Date >= since {
			grouped[m.Type] = append(grouped[m.Type], m)
		}
	}
	types := make([]models.MeasurementType, 0, len(grouped))
	for t := range grouped {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		return string(types[i]) < string(types[j])
	})

	if len(types) > 0 {
		sb.WriteString("## Measurements\n\n")
	}
	for _, t := range types {
		ms := grouped[t]
		sort.SliceStable(ms, func(i, j int) bool { return ms[i].Date < ms[j].Date })

		sb.WriteString(fmt.Sprintf("### %s\n\n", t))
		sb.WriteString("| Date | Value | Notes |\n")
		sb.WriteString("|------|-------|-------|\n")
		for _, m := range ms {
			sb.WriteString(fmt.Sprintf("| %s | %g %s | %s |\n", m.Date, m.Value, m.Unit(), escapeCell(m.Notes)))
		}
		sb.WriteString("\n")
	}

	if len(workouts) == 0 && len(types) == 0 {
		sb.WriteString("Nothing recorded.\n")
	}
	return sb.String(), nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
