package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/edfast/timetable-api/internal/models"
)

// timeRange is a class meeting in minutes since midnight.
type timeRange struct {
	start int
	end   int
}

// overlaps uses half-open semantics: slots that merely touch (10:00-11:00
// after 09:00-10:00) do not conflict.
func (a timeRange) overlaps(b timeRange) bool {
	return !(a.end <= b.start || b.end <= a.start)
}

// parseClock converts "HH:MM" into minutes since midnight.
func parseClock(raw string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", raw)
	}
	return h*60 + m, nil
}

// parseTimeSlot turns a canonical "HH:MM-HH:MM" slot into a timeRange.
// A slot without a separator is a 1-hour class starting at that time. An
// unparseable slot is clamped to the whole day so it conservatively
// conflicts with everything rather than being dropped. A slot implying
// zero or negative duration is stretched to one hour.
func parseTimeSlot(raw string) timeRange {
	allDay := timeRange{start: 0, end: 23*60 + 59}

	startStr, endStr, found := strings.Cut(raw, "-")
	start, err := parseClock(startStr)
	if err != nil {
		return allDay
	}
	if !found {
		return timeRange{start: start, end: start + 60}
	}
	end, err := parseClock(endStr)
	if err != nil {
		return allDay
	}
	if end <= start {
		end = start + 60
	}
	return timeRange{start: start, end: end}
}

// dayGroup pairs an entry with its parsed interval for pairwise scanning.
type dayGroup struct {
	day     string
	entries []models.ScheduleEntry
	ranges  []timeRange
}

// groupByDay buckets entries per weekday, parses their slots, and sorts each
// bucket by start time (stable, so equal starts keep input order). Day order
// follows first appearance in the input.
func groupByDay(entries []models.ScheduleEntry) []dayGroup {
	index := make(map[string]int)
	var groups []dayGroup
	for _, e := range entries {
		i, ok := index[e.Day]
		if !ok {
			i = len(groups)
			index[e.Day] = i
			groups = append(groups, dayGroup{day: e.Day})
		}
		groups[i].entries = append(groups[i].entries, e)
		groups[i].ranges = append(groups[i].ranges, parseTimeSlot(e.TimeSlot))
	}
	for i := range groups {
		g := &groups[i]
		order := make([]int, len(g.entries))
		for j := range order {
			order[j] = j
		}
		sort.SliceStable(order, func(a, b int) bool {
			return g.ranges[order[a]].start < g.ranges[order[b]].start
		})
		sortedEntries := make([]models.ScheduleEntry, len(order))
		sortedRanges := make([]timeRange, len(order))
		for j, k := range order {
			sortedEntries[j] = g.entries[k]
			sortedRanges[j] = g.ranges[k]
		}
		g.entries = sortedEntries
		g.ranges = sortedRanges
	}
	return groups
}

// scanOverlaps runs the day-grouped pairwise overlap scan shared by the
// conflict detector and the optimizer. conflictFree collects entries not
// involved in any overlap on their day, deduplicated.
func scanOverlaps(entries []models.ScheduleEntry) (conflicts []models.Conflict, conflictFree []models.ScheduleEntry) {
	seenFree := make(map[models.EntryKey]struct{})
	for _, g := range groupByDay(entries) {
		involved := make([]bool, len(g.entries))
		for i := 0; i < len(g.entries); i++ {
			for j := i + 1; j < len(g.entries); j++ {
				if !g.ranges[i].overlaps(g.ranges[j]) {
					continue
				}
				involved[i] = true
				involved[j] = true
				conflicts = append(conflicts, models.Conflict{
					Day:      g.day,
					Course1:  g.entries[i].Course,
					Section1: g.entries[i].Section,
					Time1:    g.entries[i].TimeSlot,
					Room1:    g.entries[i].Room,
					Course2:  g.entries[j].Course,
					Section2: g.entries[j].Section,
					Time2:    g.entries[j].TimeSlot,
					Room2:    g.entries[j].Room,
					Type:     models.ConflictTypeTimeOverlap,
				})
			}
		}
		for i, e := range g.entries {
			if involved[i] {
				continue
			}
			key := e.Key()
			if _, dup := seenFree[key]; dup {
				continue
			}
			seenFree[key] = struct{}{}
			conflictFree = append(conflictFree, e)
		}
	}
	return conflicts, conflictFree
}
