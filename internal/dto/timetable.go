package dto

import "github.com/edfast/timetable-api/internal/models"

// UploadFile is one spreadsheet received from the client, already read into
// memory. Loading bytes off the wire is the handler's job; the service only
// sees tabular data.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadTimetableRequest carries the files of one upload batch.
type UploadTimetableRequest struct {
	Files []UploadFile `validate:"required,min=1"`
}

// UploadTimetableResponse reports the stored timetable and per-file results.
type UploadTimetableResponse struct {
	ID      string                 `json:"id"`
	Files   []models.UploadedFile  `json:"files"`
	Entries []models.ScheduleEntry `json:"entries"`
}

// FilterTimetableRequest narrows a timetable to courses and/or department
// prefixes (the first two characters of the section code).
type FilterTimetableRequest struct {
	Courses     []string `json:"courses"`
	Departments []string `json:"departments"`
}

// ConflictCheckRequest selects the courses (optionally pinned to explicit
// sections) whose meetings should be scanned for overlaps.
type ConflictCheckRequest struct {
	Courses  []string `json:"courses" validate:"required,min=1"`
	Sections []string `json:"sections"`
}

// OptimizeScheduleRequest lists the required courses for a personal schedule.
type OptimizeScheduleRequest struct {
	Courses []string `json:"courses" validate:"required,min=1"`
}
