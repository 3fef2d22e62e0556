package ingest

import (
	"strings"

	"github.com/edfast/timetable-api/internal/models"
)

// Clean enforces the data-model invariants on candidate rows: it drops
// structurally invalid entries, trims text fields, and collapses exact
// duplicates on the (room, day, course, section, time) key, keeping the
// first occurrence. Running Clean on its own output is a no-op.
func Clean(entries []models.ScheduleEntry) ([]models.ScheduleEntry, models.CleanReport) {
	report := models.CleanReport{RowsBefore: len(entries)}

	out := make([]models.ScheduleEntry, 0, len(entries))
	seen := make(map[models.EntryKey]struct{}, len(entries))
	for _, e := range entries {
		e.Course = strings.TrimSpace(e.Course)
		e.Section = strings.TrimSpace(e.Section)
		e.Room = strings.TrimSpace(e.Room)

		if !validCourse(e.Course) {
			continue
		}
		if !validCell(e.TimeSlot) || e.TimeSlot == "Room" || e.TimeSlot == "Lab" {
			continue
		}
		if !validCell(e.Room) || e.Room == "Lab" {
			continue
		}

		key := e.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}

	report.RowsAfter = len(out)
	return out, report
}

// validCourse rejects blanks, "nan" placeholders, and single-character
// parsing noise.
func validCourse(course string) bool {
	return validCell(course) && len(course) > 1
}

func validCell(value string) bool {
	return value != "" && !strings.EqualFold(value, "nan")
}
