package ingest

import (
	"strings"

	"github.com/edfast/timetable-api/internal/models"
)

// parseLegacyGrid walks the 2-D grid below the header row. Column headers are
// time slots; a column without its own header inherits the most recent one
// (merged-cell semantics). Column 0 carries the room label. On Thursdays,
// rows whose room is in the configured lab-room list are lab sessions and
// take their time slot from the configured lookup row instead of the header.
//
// The walk deliberately emits raw header artifacts (e.g. rows whose time is
// the literal "Room"); the cleaner owns dropping those.
func parseLegacyGrid(rows [][]string, day string, cfg Config) []models.ScheduleEntry {
	if len(rows) <= cfg.HeaderRow+1 {
		return nil
	}
	header := rows[cfg.HeaderRow]
	columnTimes := inheritHeaderTimes(header)
	isThursday := strings.EqualFold(day, "Thursday")

	labRooms := make(map[string]struct{}, len(cfg.LabRooms))
	for _, room := range cfg.LabRooms {
		labRooms[room] = struct{}{}
	}

	var entries []models.ScheduleEntry
	for _, row := range rows[cfg.HeaderRow+1:] {
		if len(row) == 0 {
			continue
		}
		room := strings.TrimSpace(row[0])
		_, isLabRoom := labRooms[room]

		for j, raw := range row {
			course, section, ok := ExtractCourseSection(raw)
			if !ok {
				continue
			}
			entry := models.ScheduleEntry{
				Room:    room,
				Day:     day,
				Course:  course,
				Section: section,
				Kind:    models.KindTheory,
			}
			if j < len(columnTimes) {
				entry.TimeSlot = columnTimes[j]
			}
			if isThursday && isLabRoom {
				entry.Kind = models.KindLab
				entry.TimeSlot = labTimeAt(rows, cfg.LabTimeRow, j)
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// inheritHeaderTimes resolves per-column time slots, carrying the previous
// header forward across empty cells left by merged ranges.
func inheritHeaderTimes(header []string) []string {
	times := make([]string, len(header))
	prev := ""
	for j, h := range header {
		h = strings.TrimSpace(h)
		if h != "" {
			prev = h
		}
		times[j] = prev
	}
	return times
}

func labTimeAt(rows [][]string, labRow, col int) string {
	if labRow < 0 || labRow >= len(rows) {
		return ""
	}
	row := rows[labRow]
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
