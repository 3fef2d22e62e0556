package models

// ScheduleStats aggregates simple counts over a cleaned schedule.
type ScheduleStats struct {
	TotalClasses    int `json:"total_classes"`
	UniqueCourses   int `json:"unique_courses"`
	TheoryClasses   int `json:"theory_classes"`
	LabClasses      int `json:"lab_classes"`
	DaysWithClasses int `json:"days_with_classes"`
	UniqueRooms     int `json:"unique_rooms"`
}
