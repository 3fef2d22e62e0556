package models

// EntryKind distinguishes theory lectures from laboratory sessions.
type EntryKind string

const (
	KindTheory EntryKind = "Theory"
	KindLab    EntryKind = "Lab"
)

// ScheduleEntry is the canonical timetable unit produced by the normalizer.
// The JSON and CSV keys match the serialization contract consumed by the web
// frontend (Class/Day/Course/Section/Type/Time).
type ScheduleEntry struct {
	Room     string    `json:"Class" csv:"Class"`
	Day      string    `json:"Day" csv:"Day"`
	Course   string    `json:"Course" csv:"Course"`
	Section  string    `json:"Section" csv:"Section"`
	Kind     EntryKind `json:"Type" csv:"Type"`
	TimeSlot string    `json:"Time" csv:"Time"`
}

// EntryKey is the five-field uniqueness key used for deduplication.
type EntryKey struct {
	Room     string
	Day      string
	Course   string
	Section  string
	TimeSlot string
}

// Key returns the deduplication key for the entry.
func (e ScheduleEntry) Key() EntryKey {
	return EntryKey{
		Room:     e.Room,
		Day:      e.Day,
		Course:   e.Course,
		Section:  e.Section,
		TimeSlot: e.TimeSlot,
	}
}

// CleanReport records row counts around a cleaning pass. Observability only.
type CleanReport struct {
	RowsBefore int `json:"rows_before"`
	RowsAfter  int `json:"rows_after"`
}
