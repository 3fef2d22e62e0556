package ingest

import (
	"strings"

	"github.com/edfast/timetable-api/internal/models"
)

type timeColumn struct {
	col  int
	slot string
}

// parseRoomByTime reads the newer grid: the header row yields ordered
// (column, time-slot) pairs, every following row names a room in column 0,
// and the cells at time columns hold course text. Kind is inferred by
// keyword only; the Thursday lab-room rule does not apply to this layout.
func parseRoomByTime(rows [][]string, day string, headerRow int) []models.ScheduleEntry {
	if headerRow < 0 || len(rows) <= headerRow {
		return nil
	}

	var columns []timeColumn
	for i, cell := range rows[headerRow] {
		cell = strings.TrimSpace(cell)
		if strings.Contains(cell, ":") && strings.Contains(cell, "-") {
			columns = append(columns, timeColumn{col: i, slot: cell})
		}
	}
	if len(columns) == 0 {
		return nil
	}

	var entries []models.ScheduleEntry
	for _, row := range rows[headerRow+1:] {
		if len(row) == 0 {
			continue
		}
		room := strings.TrimSpace(row[0])
		if room == "" || strings.EqualFold(room, "nan") {
			continue
		}
		for _, tc := range columns {
			if tc.col >= len(row) {
				continue
			}
			course, section, ok := ExtractCourseSection(row[tc.col])
			if !ok {
				continue
			}
			entries = append(entries, models.ScheduleEntry{
				Room:     room,
				Day:      day,
				Course:   course,
				Section:  section,
				Kind:     KindForCourse(course),
				TimeSlot: tc.slot,
			})
		}
	}
	return entries
}
