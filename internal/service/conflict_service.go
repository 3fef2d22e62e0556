package service

import (
	"go.uber.org/zap"

	"github.com/edfast/timetable-api/internal/models"
)

// ConflictService detects pairwise time-overlap conflicts among a student's
// selected course sections. The schedule universe is always an explicit
// argument; the service holds no parsed-schedule state of its own.
type ConflictService struct {
	logger  *zap.Logger
	metrics *MetricsService
}

// NewConflictService wires the detector.
func NewConflictService(logger *zap.Logger, metrics *MetricsService) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{logger: logger, metrics: metrics}
}

// Check filters the universe down to the selected courses (and, when given,
// sections), scans each weekday for overlapping pairs, and attaches
// alternative-section recommendations drawn from the full universe.
func (s *ConflictService) Check(universe []models.ScheduleEntry, courses, sections []string) *models.ConflictReport {
	selected := filterSelection(universe, courses, sections)

	conflicts, conflictFree := scanOverlaps(selected)
	if conflicts == nil {
		conflicts = []models.Conflict{}
	}
	if len(conflicts) == 0 {
		// Nothing collided; the whole selection stands as-is.
		conflictFree = selected
	}
	if conflictFree == nil {
		conflictFree = []models.ScheduleEntry{}
	}

	recommendations := make([]models.Recommendation, 0, len(conflicts))
	for _, c := range conflicts {
		recommendations = append(recommendations, recommendFor(universe, c))
	}

	report := &models.ConflictReport{
		Conflicts:            conflicts,
		ConflictFreeSchedule: conflictFree,
		Recommendations:      recommendations,
		TotalCourses:         len(courses),
		ConflictedCourses:    countConflictedCourses(conflicts),
	}

	s.metrics.RecordConflictCheck(len(conflicts))
	s.logger.Debug("conflict check",
		zap.Int("selected_entries", len(selected)),
		zap.Int("conflicts", len(conflicts)),
	)
	return report
}

func filterSelection(universe []models.ScheduleEntry, courses, sections []string) []models.ScheduleEntry {
	courseSet := toSet(courses)
	sectionSet := toSet(sections)

	var selected []models.ScheduleEntry
	for _, e := range universe {
		if _, ok := courseSet[e.Course]; !ok {
			continue
		}
		if len(sectionSet) > 0 {
			if _, ok := sectionSet[e.Section]; !ok {
				continue
			}
		}
		selected = append(selected, e)
	}
	return selected
}

// recommendFor gathers alternative sections of both conflicted courses on the
// same day. A conflict between sections with no alternatives yields a
// recommendation with an empty suggestion list.
func recommendFor(universe []models.ScheduleEntry, c models.Conflict) models.Recommendation {
	rec := models.Recommendation{
		ConflictType:      models.ConflictTypeTimeOverlap,
		ConflictedCourses: []string{c.Course1, c.Course2},
		Day:               c.Day,
		Suggestions:       []models.SectionSuggestion{},
	}
	appendAlternatives := func(course, section string) {
		for _, e := range universe {
			if e.Course != course || e.Day != c.Day || e.Section == section {
				continue
			}
			rec.Suggestions = append(rec.Suggestions, models.SectionSuggestion{
				Course:             course,
				AlternativeSection: e.Section,
				AlternativeTime:    e.TimeSlot,
				AlternativeRoom:    e.Room,
			})
		}
	}
	appendAlternatives(c.Course1, c.Section1)
	appendAlternatives(c.Course2, c.Section2)
	return rec
}

func countConflictedCourses(conflicts []models.Conflict) int {
	courses := make(map[string]struct{})
	for _, c := range conflicts {
		courses[c.Course1] = struct{}{}
		courses[c.Course2] = struct{}{}
	}
	return len(courses)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
