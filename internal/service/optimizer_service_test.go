package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edfast/timetable-api/internal/models"
)

func TestOptimizeSingleSection(t *testing.T) {
	universe := []models.ScheduleEntry{
		{Course: "CS101", Section: "CS-A", Day: "Monday", TimeSlot: "09:00-10:00", Room: "Room1"},
	}
	svc := NewOptimizerService(0, nil, nil)

	result := svc.Optimize(universe, []string{"CS101"})

	assert.True(t, result.Success)
	require.Len(t, result.Schedule, 1)
	assert.Equal(t, "CS-A", result.Schedule[0].Section)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 1, result.TotalCourses)
	assert.Equal(t, 1, result.ScheduledCourses)
}

func TestOptimizePicksNonConflictingSection(t *testing.T) {
	universe := []models.ScheduleEntry{
		{Course: "CS101", Section: "CS-A", Day: "Monday", TimeSlot: "09:00-10:00", Room: "Room1"},
		{Course: "MA201", Section: "MA-A", Day: "Monday", TimeSlot: "09:30-10:30", Room: "Room2"},
		{Course: "MA201", Section: "MA-B", Day: "Monday", TimeSlot: "11:00-12:00", Room: "Room3"},
	}
	svc := NewOptimizerService(0, nil, nil)

	result := svc.Optimize(universe, []string{"CS101", "MA201"})

	require.True(t, result.Success)
	require.Len(t, result.Schedule, 2)
	sections := map[string]string{}
	for _, e := range result.Schedule {
		sections[e.Course] = e.Section
	}
	assert.Equal(t, "CS-A", sections["CS101"])
	assert.Equal(t, "MA-B", sections["MA201"], "the clashing section is avoided")
	assert.Empty(t, result.Conflicts)
}

func TestOptimizeReportsResidualConflicts(t *testing.T) {
	// Every section of both courses collides; the best schedule still
	// carries one conflict and success stays false.
	universe := []models.ScheduleEntry{
		{Course: "CS101", Section: "CS-A", Day: "Monday", TimeSlot: "09:00-10:00", Room: "Room1"},
		{Course: "MA201", Section: "MA-A", Day: "Monday", TimeSlot: "09:00-10:00", Room: "Room2"},
		{Course: "MA201", Section: "MA-B", Day: "Monday", TimeSlot: "09:30-10:30", Room: "Room3"},
	}
	svc := NewOptimizerService(0, nil, nil)

	result := svc.Optimize(universe, []string{"CS101", "MA201"})

	assert.False(t, result.Success)
	assert.Len(t, result.Schedule, 2)
	assert.Len(t, result.Conflicts, 1)
}

func TestOptimizeCollapsesMultiRoomMeetings(t *testing.T) {
	// One meeting split across two rooms is a single session, not a
	// self-conflicting pair.
	universe := []models.ScheduleEntry{
		{Course: "CS101", Section: "CS-A", Day: "Monday", TimeSlot: "09:00-10:00", Room: "Room1"},
		{Course: "CS101", Section: "CS-A", Day: "Monday", TimeSlot: "09:00-10:00", Room: "Room2"},
	}
	svc := NewOptimizerService(0, nil, nil)

	result := svc.Optimize(universe, []string{"CS101"})

	assert.True(t, result.Success)
	assert.Len(t, result.Schedule, 1)
}

func TestOptimizeCombinationCap(t *testing.T) {
	// 3 courses x 8 sections = 512 combinations, well past the cap. The run
	// must still terminate with a valid result from the explored prefix.
	var universe []models.ScheduleEntry
	for _, course := range []string{"CS101", "MA201", "PH301"} {
		for i := 0; i < 8; i++ {
			universe = append(universe, models.ScheduleEntry{
				Course:   course,
				Section:  fmt.Sprintf("%s-S%d", course, i),
				Day:      "Monday",
				TimeSlot: fmt.Sprintf("%02d:00-%02d:50", 8+i, 8+i),
				Room:     "Room1",
			})
		}
	}
	svc := NewOptimizerService(100, nil, nil)

	result := svc.Optimize(universe, []string{"CS101", "MA201", "PH301"})

	assert.Len(t, result.Schedule, 3)
	assert.Equal(t, 3, result.TotalCourses)
}

func TestOptimizeMissingCourse(t *testing.T) {
	universe := []models.ScheduleEntry{
		{Course: "CS101", Section: "CS-A", Day: "Monday", TimeSlot: "09:00-10:00", Room: "Room1"},
	}
	svc := NewOptimizerService(0, nil, nil)

	// ZZ999 has no sections anywhere; the schedule simply omits it.
	result := svc.Optimize(universe, []string{"CS101", "ZZ999"})

	require.Len(t, result.Schedule, 1)
	assert.Equal(t, 2, result.TotalCourses)
	assert.Equal(t, 1, result.ScheduledCourses)
}

func TestOptimizeEmptyUniverse(t *testing.T) {
	svc := NewOptimizerService(0, nil, nil)

	result := svc.Optimize(nil, []string{"CS101"})

	assert.False(t, result.Success)
	assert.Empty(t, result.Schedule)
	assert.Equal(t, 1, result.TotalCourses)
	assert.Zero(t, result.ScheduledCourses)
}

func TestOptimizeNoCourses(t *testing.T) {
	svc := NewOptimizerService(0, nil, nil)

	result := svc.Optimize(conflictTestUniverse(), nil)

	assert.False(t, result.Success)
	assert.Empty(t, result.Schedule)
	assert.Zero(t, result.TotalCourses)
}
