package service

import (
	"go.uber.org/zap"

	"github.com/edfast/timetable-api/internal/models"
)

// DefaultMaxCombinations caps the optimizer's cross-product enumeration.
const DefaultMaxCombinations = 100

// sectionOption is one mutually-exclusive choice for a course: the entries
// of a single section, collapsed on (section, day, time) so multi-room
// duplicates of one meeting count once. A course with no sections in the
// universe contributes one empty option so combination generation still
// proceeds; the resulting schedule simply omits that course.
type sectionOption struct {
	section string
	entries []models.ScheduleEntry
}

// OptimizerService searches per-course section combinations for a schedule
// with the fewest weekly overlap conflicts. The enumeration is truncated at
// maxCombinations in plain enumeration order, so the result is best-effort
// over the explored prefix, not a guaranteed optimum.
type OptimizerService struct {
	maxCombinations int
	logger          *zap.Logger
	metrics         *MetricsService
}

// NewOptimizerService wires the optimizer. A non-positive cap falls back to
// DefaultMaxCombinations.
func NewOptimizerService(maxCombinations int, logger *zap.Logger, metrics *MetricsService) *OptimizerService {
	if maxCombinations <= 0 {
		maxCombinations = DefaultMaxCombinations
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OptimizerService{maxCombinations: maxCombinations, logger: logger, metrics: metrics}
}

// Optimize picks one section per requested course minimizing total weekly
// conflicts. Ties keep the first combination found. success is true only for
// a zero-conflict schedule; an empty universe yields an explicitly empty,
// unsuccessful result.
func (s *OptimizerService) Optimize(universe []models.ScheduleEntry, courses []string) *models.OptimizedSchedule {
	result := &models.OptimizedSchedule{
		Schedule:     []models.ScheduleEntry{},
		Conflicts:    []models.Conflict{},
		TotalCourses: len(courses),
	}
	if len(courses) == 0 {
		return result
	}

	optionLists := make([][]sectionOption, len(courses))
	for i, course := range courses {
		optionLists[i] = sectionOptions(universe, course)
	}

	var best []models.ScheduleEntry
	var bestConflicts []models.Conflict
	found := false
	evaluated := 0

	// Odometer over per-course choices, in enumeration order.
	choice := make([]int, len(optionLists))
	for evaluated < s.maxCombinations {
		candidate := assemble(optionLists, choice)
		evaluated++
		if len(candidate) > 0 {
			conflicts, _ := scanOverlaps(candidate)
			if !found || len(conflicts) < len(bestConflicts) {
				found = true
				best = candidate
				bestConflicts = conflicts
			}
		}
		if !advance(choice, optionLists) {
			break
		}
	}

	s.metrics.RecordOptimizerRun(evaluated)
	s.logger.Debug("schedule optimization",
		zap.Int("courses", len(courses)),
		zap.Int("combinations_evaluated", evaluated),
		zap.Bool("solution_found", found),
	)

	if !found {
		return result
	}
	result.Schedule = best
	if bestConflicts != nil {
		result.Conflicts = bestConflicts
	}
	result.Success = len(bestConflicts) == 0
	result.ScheduledCourses = countCourses(best)
	return result
}

// sectionOptions groups a course's entries into per-section options, first
// collapsing duplicates that differ only by room.
func sectionOptions(universe []models.ScheduleEntry, course string) []sectionOption {
	type meetingKey struct {
		section string
		day     string
		time    string
	}
	seen := make(map[meetingKey]struct{})
	index := make(map[string]int)
	var options []sectionOption

	for _, e := range universe {
		if e.Course != course {
			continue
		}
		mk := meetingKey{section: e.Section, day: e.Day, time: e.TimeSlot}
		if _, dup := seen[mk]; dup {
			continue
		}
		seen[mk] = struct{}{}

		i, ok := index[e.Section]
		if !ok {
			i = len(options)
			index[e.Section] = i
			options = append(options, sectionOption{section: e.Section})
		}
		options[i].entries = append(options[i].entries, e)
	}

	if len(options) == 0 {
		return []sectionOption{{}}
	}
	return options
}

func assemble(optionLists [][]sectionOption, choice []int) []models.ScheduleEntry {
	var candidate []models.ScheduleEntry
	for i, options := range optionLists {
		candidate = append(candidate, options[choice[i]].entries...)
	}
	return candidate
}

// advance increments the rightmost choice, carrying leftwards; it reports
// false once every combination has been visited.
func advance(choice []int, optionLists [][]sectionOption) bool {
	for i := len(choice) - 1; i >= 0; i-- {
		choice[i]++
		if choice[i] < len(optionLists[i]) {
			return true
		}
		choice[i] = 0
	}
	return false
}

func countCourses(entries []models.ScheduleEntry) int {
	courses := make(map[string]struct{})
	for _, e := range entries {
		courses[e.Course] = struct{}{}
	}
	return len(courses)
}
