package models

// ConflictTypeTimeOverlap is the only conflict class detected today. Room and
// instructor collisions belong to the scheduling office, not to student plans.
const ConflictTypeTimeOverlap = "Time Overlap"

// Conflict describes two entries on the same day whose time slots overlap.
type Conflict struct {
	Day      string `json:"day"`
	Course1  string `json:"course1"`
	Section1 string `json:"section1"`
	Time1    string `json:"time1"`
	Room1    string `json:"room1"`
	Course2  string `json:"course2"`
	Section2 string `json:"section2"`
	Time2    string `json:"time2"`
	Room2    string `json:"room2"`
	Type     string `json:"type"`
}

// SectionSuggestion proposes a substitute section for a conflicted course.
type SectionSuggestion struct {
	Course             string `json:"course"`
	AlternativeSection string `json:"alternative_section"`
	AlternativeTime    string `json:"alternative_time"`
	AlternativeRoom    string `json:"alternative_room"`
}

// Recommendation bundles substitute sections for one detected conflict.
type Recommendation struct {
	ConflictType      string              `json:"conflict_type"`
	ConflictedCourses []string            `json:"conflicted_courses"`
	Day               string              `json:"day"`
	Suggestions       []SectionSuggestion `json:"suggestions"`
}

// ConflictReport is the conflict detector's full result.
type ConflictReport struct {
	Conflicts            []Conflict      `json:"conflicts"`
	ConflictFreeSchedule []ScheduleEntry `json:"conflict_free_schedule"`
	Recommendations      []Recommendation `json:"recommendations"`
	TotalCourses         int             `json:"total_courses"`
	ConflictedCourses    int             `json:"conflicted_courses"`
}

// OptimizedSchedule is the optimizer's result: one chosen section per course
// where possible, plus whatever overlaps remain in the best combination found.
type OptimizedSchedule struct {
	Schedule         []ScheduleEntry `json:"schedule"`
	Conflicts        []Conflict      `json:"conflicts"`
	Success          bool            `json:"success"`
	TotalCourses     int             `json:"total_courses"`
	ScheduledCourses int             `json:"scheduled_courses"`
}
