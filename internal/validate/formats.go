package validate

import "regexp"

// DateLayout is the canonical ISO 8601 date-time form the target application
// expects.
const DateLayout = "2006-01-02T15:04:05"

var (
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)
	durationRe = regexp.MustCompile(`^PT\d+H\d+M\d+S$`)
)

// ValidDate reports whether text is a canonical ISO 8601 date-time
// (YYYY-MM-DDTHH:MM:SS, no zone suffix).
func ValidDate(text string) bool {
	return dateRe.MatchString(text)
}

// ValidDuration reports whether text is a canonical ISO 8601 duration
// (PT<h>H<m>M<s>S).
func ValidDuration(text string) bool {
	return durationRe.MatchString(text)
}

// ProjectDateFields are the project-level fields that must hold canonical
// date-times.
var ProjectDateFields = []string{"StartDate", "FinishDate", "CurrentDate", "CreationDate"}

// TaskDateFields are the task-level fields that must hold canonical
// date-times.
var TaskDateFields = []string{"Start", "Finish"}

// TaskDurationFields are the task-level fields that must hold canonical
// durations.
var TaskDurationFields = []string{"Duration", "Work"}
