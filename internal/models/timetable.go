package models

import "time"

// UploadedFile records one source file that contributed to a timetable.
type UploadedFile struct {
	Filename   string      `json:"filename"`
	StoredPath string      `json:"-"`
	Entries    int         `json:"entries"`
	Report     CleanReport `json:"report"`
}

// Timetable is a parsed-and-cleaned schedule universe held in the store.
type Timetable struct {
	ID        string          `json:"id"`
	Files     []UploadedFile  `json:"files"`
	Entries   []ScheduleEntry `json:"entries"`
	CreatedAt time.Time       `json:"created_at"`
}

// TimetableSummary is the listing view of a stored timetable.
type TimetableSummary struct {
	ID        string    `json:"id"`
	Files     int       `json:"files"`
	Entries   int       `json:"entries"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary derives the listing view.
func (t Timetable) Summary() TimetableSummary {
	return TimetableSummary{
		ID:        t.ID,
		Files:     len(t.Files),
		Entries:   len(t.Entries),
		CreatedAt: t.CreatedAt,
	}
}
