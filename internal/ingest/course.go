package ingest

import (
	"regexp"
	"strings"

	"github.com/edfast/timetable-api/internal/models"
)

var embeddedTimeRe = regexp.MustCompile(`\d{2}:\d{2}-\d{2}:\d{2}`)

// ExtractCourseSection splits a grid cell like "DLD (CS-B)" into course and
// section. Embedded time ranges ("Psychology (AI-A) 10:00-11:45") are
// stripped first. Without a parenthetical the whole cell doubles as both
// course and section. ok is false for cells with no usable course text.
func ExtractCourseSection(text string) (course, section string, ok bool) {
	text = strings.TrimSpace(embeddedTimeRe.ReplaceAllString(text, ""))
	if text == "" || strings.EqualFold(text, "nan") {
		return "", "", false
	}

	open := strings.Index(text, "(")
	close := strings.Index(text, ")")
	if open != -1 && close != -1 && close > open {
		course = strings.TrimSpace(text[:open])
		section = strings.TrimSpace(text[open+1 : close])
	} else {
		course = text
		section = course
	}
	if course == "" {
		return "", "", false
	}
	return course, section, true
}

// KindForCourse infers Theory vs Lab from the course name. A bare substring
// match covers both "Lab" and "Laboratory" spellings used by the office.
func KindForCourse(course string) models.EntryKind {
	if strings.Contains(strings.ToLower(course), "lab") {
		return models.KindLab
	}
	return models.KindTheory
}
