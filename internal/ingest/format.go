// Package ingest normalizes the scheduling office's heterogeneous timetable
// layouts into canonical schedule entries. Two workbook layouts are in
// circulation (the legacy grid and the newer room-by-time grid) plus a flat
// CSV table; each sheet of a workbook covers one weekday.
package ingest

import (
	"regexp"
	"strings"
)

// SheetFormat tags the source layout of one sheet or table.
type SheetFormat int

const (
	// FormatLegacyGrid is the original layout: time slots as column headers
	// (merged cells inherit the previous header), rooms as row labels.
	FormatLegacyGrid SheetFormat = iota
	// FormatRoomByTime is the newer layout: a "Room" header row followed by
	// one row per room with time-slot columns.
	FormatRoomByTime
	// FormatFlatTable is a plain CSV with named columns, no grid inference.
	FormatFlatTable
)

// Config carries the parsing knobs injected from application configuration.
type Config struct {
	// LabRooms are rooms the scheduling office reserves for Thursday lab
	// sessions in legacy workbooks.
	LabRooms []string
	// LabTimeRow is the zero-based row holding the substitute lab time slots.
	LabTimeRow int
	// HeaderRow is the zero-based row probed for format detection and used
	// as the header of both grid layouts.
	HeaderRow int
}

var clockRe = regexp.MustCompile(`\d{1,2}:\d{2}`)

// DetectSheetFormat classifies one sheet's raw rows. A sheet is room-by-time
// when the designated header row starts with a "Room" cell and at least one
// other cell in that row looks like a time range; anything else is treated as
// the legacy grid.
func DetectSheetFormat(rows [][]string, headerRow int) SheetFormat {
	if headerRow < 0 || len(rows) <= headerRow {
		return FormatLegacyGrid
	}
	header := rows[headerRow]
	if len(header) == 0 || !strings.Contains(header[0], "Room") {
		return FormatLegacyGrid
	}
	for _, cell := range header[1:] {
		if clockRe.MatchString(cell) {
			return FormatRoomByTime
		}
	}
	return FormatLegacyGrid
}

// DayFromSheetName extracts the weekday from a sheet name, dropping trailing
// date annotations such as "Monday (May 12, 2025)".
func DayFromSheetName(sheet string) string {
	name, _, _ := strings.Cut(sheet, "(")
	return strings.TrimSpace(name)
}

var skippedSheets = map[string]struct{}{
	"welcome":      {},
	"info":         {},
	"instructions": {},
}

// SkipSheet reports whether a sheet is a non-day tab that contributes nothing.
func SkipSheet(sheet string) bool {
	_, ok := skippedSheets[strings.ToLower(strings.TrimSpace(sheet))]
	return ok
}
