package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edfast/timetable-api/internal/models"
)

func conflictTestUniverse() []models.ScheduleEntry {
	return []models.ScheduleEntry{
		{Course: "CS101", Section: "CS-A", Day: "Monday", TimeSlot: "09:00-10:30", Room: "Room1"},
		{Course: "MA201", Section: "MA-B", Day: "Monday", TimeSlot: "10:00-11:00", Room: "Room2"},
		{Course: "MA201", Section: "MA-C", Day: "Monday", TimeSlot: "13:00-14:00", Room: "Room3"},
		{Course: "MA201", Section: "MA-D", Day: "Tuesday", TimeSlot: "09:00-10:30", Room: "Room4"},
		{Course: "PH301", Section: "PH-A", Day: "Wednesday", TimeSlot: "09:00-10:00", Room: "Room5"},
	}
}

func TestConflictCheckFindsOverlap(t *testing.T) {
	svc := NewConflictService(nil, nil)

	report := svc.Check(conflictTestUniverse(), []string{"CS101", "MA201"}, []string{"CS-A", "MA-B"})

	require.Len(t, report.Conflicts, 1)
	c := report.Conflicts[0]
	assert.Equal(t, "Monday", c.Day)
	assert.Equal(t, "CS101", c.Course1)
	assert.Equal(t, "MA201", c.Course2)
	assert.Equal(t, models.ConflictTypeTimeOverlap, c.Type)

	assert.Equal(t, 2, report.TotalCourses)
	assert.Equal(t, 2, report.ConflictedCourses)
	assert.Empty(t, report.ConflictFreeSchedule)
}

func TestConflictCheckRecommendsAlternativeSections(t *testing.T) {
	svc := NewConflictService(nil, nil)

	report := svc.Check(conflictTestUniverse(), []string{"CS101", "MA201"}, []string{"CS-A", "MA-B"})

	require.Len(t, report.Recommendations, 1)
	rec := report.Recommendations[0]
	assert.Equal(t, []string{"CS101", "MA201"}, rec.ConflictedCourses)
	assert.Equal(t, "Monday", rec.Day)

	// Only MA-C qualifies: same course and day, different section. The
	// Tuesday section is on another day and offers nothing for this clash.
	require.Len(t, rec.Suggestions, 1)
	assert.Equal(t, "MA201", rec.Suggestions[0].Course)
	assert.Equal(t, "MA-C", rec.Suggestions[0].AlternativeSection)
	assert.Equal(t, "13:00-14:00", rec.Suggestions[0].AlternativeTime)
}

func TestConflictCheckCleanSelection(t *testing.T) {
	svc := NewConflictService(nil, nil)

	report := svc.Check(conflictTestUniverse(), []string{"CS101", "PH301"}, nil)

	assert.Empty(t, report.Conflicts)
	assert.Zero(t, report.ConflictedCourses)
	require.Len(t, report.ConflictFreeSchedule, 2)
	assert.NotNil(t, report.Recommendations)
	assert.Empty(t, report.Recommendations)
}

func TestConflictCheckSectionPinning(t *testing.T) {
	svc := NewConflictService(nil, nil)

	// Pinning MA201 to the 13:00 section sidesteps the clash entirely.
	report := svc.Check(conflictTestUniverse(), []string{"CS101", "MA201"}, []string{"CS-A", "MA-C"})

	assert.Empty(t, report.Conflicts)
	assert.Len(t, report.ConflictFreeSchedule, 2)
}

func TestConflictCheckUnknownCourse(t *testing.T) {
	svc := NewConflictService(nil, nil)

	report := svc.Check(conflictTestUniverse(), []string{"ZZ999"}, nil)

	assert.Empty(t, report.Conflicts)
	assert.Empty(t, report.ConflictFreeSchedule)
	assert.Equal(t, 1, report.TotalCourses)
}
