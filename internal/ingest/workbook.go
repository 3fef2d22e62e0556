package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/edfast/timetable-api/internal/models"
)

// SheetStats summarises what a workbook pass did, for logging and metrics.
type SheetStats struct {
	Parsed  int
	Skipped int
}

// ParseWorkbook normalizes every day sheet of an opened workbook. Non-day
// tabs are skipped, a sheet that yields no rows contributes nothing, and a
// sheet that fails to read is treated the same way rather than failing the
// whole workbook.
func ParseWorkbook(f *excelize.File, cfg Config) ([]models.ScheduleEntry, SheetStats) {
	var all []models.ScheduleEntry
	var stats SheetStats

	for _, sheet := range f.GetSheetList() {
		if SkipSheet(sheet) {
			stats.Skipped++
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			stats.Skipped++
			continue
		}

		day := DayFromSheetName(sheet)
		var entries []models.ScheduleEntry
		switch DetectSheetFormat(rows, cfg.HeaderRow) {
		case FormatRoomByTime:
			entries = parseRoomByTime(rows, day, cfg.HeaderRow)
		default:
			entries = parseLegacyGrid(rows, day, cfg)
		}
		all = append(all, entries...)
		stats.Parsed++
	}
	return all, stats
}

// ParseWorkbookReader opens workbook bytes and normalizes them.
func ParseWorkbookReader(r io.Reader, cfg Config) ([]models.ScheduleEntry, SheetStats, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, SheetStats{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck
	entries, stats := ParseWorkbook(f, cfg)
	return entries, stats, nil
}
