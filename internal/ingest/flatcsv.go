package ingest

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/edfast/timetable-api/internal/models"
)

// ParseFlatCSV reads the flat tabular layout: one row per entry with named
// Course/Section/Class/Day/Time columns and an optional Type. No grid
// inference happens here; rows pass straight to the cleaner. A missing Type
// falls back to keyword inference.
func ParseFlatCSV(r io.Reader) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	if err := gocsv.Unmarshal(r, &entries); err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	for i := range entries {
		if entries[i].Kind == "" {
			entries[i].Kind = KindForCourse(entries[i].Course)
		}
	}
	return entries, nil
}
