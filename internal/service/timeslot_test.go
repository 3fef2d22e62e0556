package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edfast/timetable-api/internal/models"
)

func TestParseTimeSlot(t *testing.T) {
	tests := []struct {
		name  string
		slot  string
		start int
		end   int
	}{
		{name: "plain range", slot: "09:00-10:30", start: 540, end: 630},
		{name: "start only defaults to one hour", slot: "09:00", start: 540, end: 600},
		{name: "zero duration stretched", slot: "10:00-10:00", start: 600, end: 660},
		{name: "inverted range stretched", slot: "10:00-09:00", start: 600, end: 660},
		{name: "garbage clamps to whole day", slot: "TBD", start: 0, end: 23*60 + 59},
		{name: "garbage end clamps to whole day", slot: "09:00-later", start: 0, end: 23*60 + 59},
		{name: "empty clamps to whole day", slot: "", start: 0, end: 23*60 + 59},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseTimeSlot(tt.slot)
			assert.Equal(t, tt.start, r.start)
			assert.Equal(t, tt.end, r.end)
		})
	}
}

func TestOverlapsIsSymmetricAndHalfOpen(t *testing.T) {
	a := parseTimeSlot("09:00-10:00")
	b := parseTimeSlot("10:00-11:00")
	c := parseTimeSlot("09:30-10:30")

	assert.False(t, a.overlaps(b), "touching slots do not conflict")
	assert.False(t, b.overlaps(a))
	assert.True(t, a.overlaps(c))
	assert.True(t, c.overlaps(a))
	assert.True(t, a.overlaps(a))
}

func TestScanOverlaps(t *testing.T) {
	entries := []models.ScheduleEntry{
		{Course: "CS101", Section: "A", Day: "Monday", TimeSlot: "09:00-10:30", Room: "Room1"},
		{Course: "MA201", Section: "B", Day: "Monday", TimeSlot: "10:00-11:00", Room: "Room2"},
		{Course: "PH301", Section: "C", Day: "Monday", TimeSlot: "13:00-14:00", Room: "Room3"},
	}

	conflicts, free := scanOverlaps(entries)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "Monday", conflicts[0].Day)
	assert.Equal(t, "CS101", conflicts[0].Course1)
	assert.Equal(t, "MA201", conflicts[0].Course2)
	assert.Equal(t, models.ConflictTypeTimeOverlap, conflicts[0].Type)

	require.Len(t, free, 1)
	assert.Equal(t, "PH301", free[0].Course)
}

func TestScanOverlapsIsolatesDays(t *testing.T) {
	entries := []models.ScheduleEntry{
		{Course: "CS101", Section: "A", Day: "Monday", TimeSlot: "09:00-10:30"},
		{Course: "MA201", Section: "B", Day: "Tuesday", TimeSlot: "09:00-10:30"},
	}

	conflicts, free := scanOverlaps(entries)

	assert.Empty(t, conflicts, "identical times on different days never collide")
	assert.Len(t, free, 2)
}

func TestScanOverlapsTouchingBoundary(t *testing.T) {
	entries := []models.ScheduleEntry{
		{Course: "CS101", Section: "A", Day: "Monday", TimeSlot: "09:00-10:00"},
		{Course: "MA201", Section: "B", Day: "Monday", TimeSlot: "10:00-11:00"},
	}

	conflicts, _ := scanOverlaps(entries)
	assert.Empty(t, conflicts)
}
