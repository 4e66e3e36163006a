// Package validate holds the integrity checks run against a project document.
// Every check is read-only: it walks the document model and appends violation
// records, never mutating the tree. Checks keep going past the first problem
// so a single run reports everything at once.
package validate

import (
	"github.com/ganot/projfix/internal/document"
	"github.com/ganot/projfix/internal/issue"
)

// CheckUniqueUIDs verifies UID uniqueness within each of the Task, Resource,
// and Assignment collections. Collisions across collections are legal. It
// returns the sets of known task and resource UIDs for reuse by the
// referential-integrity check.
func CheckUniqueUIDs(doc *document.Document, violations *issue.List) (taskUIDs, resourceUIDs map[string]struct{}) {
	project := doc.Project()

	taskUIDs = map[string]struct{}{}
	for _, task := range project.Tasks() {
		recordUID(task.UID(), "Task", taskUIDs, violations)
	}

	resourceUIDs = map[string]struct{}{}
	for _, resource := range project.Resources() {
		recordUID(resource.UID(), "Resource", resourceUIDs, violations)
	}

	assignmentUIDs := map[string]struct{}{}
	for _, assignment := range project.Assignments() {
		recordUID(assignment.UID(), "Assignment", assignmentUIDs, violations)
	}

	return taskUIDs, resourceUIDs
}

func recordUID(uid, kind string, seen map[string]struct{}, violations *issue.List) {
	if uid == "" {
		return
	}
	if _, dup := seen[uid]; dup {
		violations.Add(issue.DuplicateUIDs, "Duplicate %s UID found: %s", kind, uid)
		return
	}
	seen[uid] = struct{}{}
}

// CheckReferences verifies that every Assignment points at an existing task
// and resource, and that every PredecessorLink points at an existing task.
// References are reported, never repaired.
func CheckReferences(doc *document.Document, taskUIDs, resourceUIDs map[string]struct{}, violations *issue.List) {
	project := doc.Project()

	for _, assignment := range project.Assignments() {
		if taskUID, ok := assignment.TaskUID(); ok {
			if _, known := taskUIDs[taskUID]; !known {
				violations.Add(issue.BrokenReferences,
					"Assignment <UID>%s</UID> points to non-existent TaskUID: %s", assignment.UID(), taskUID)
			}
		}
		if resourceUID, ok := assignment.ResourceUID(); ok {
			if _, known := resourceUIDs[resourceUID]; !known {
				violations.Add(issue.BrokenReferences,
					"Assignment <UID>%s</UID> points to non-existent ResourceUID: %s", assignment.UID(), resourceUID)
			}
		}
	}

	for _, task := range project.Tasks() {
		for _, link := range task.Links() {
			pred := link.PredecessorUID()
			if pred == "" {
				continue
			}
			if _, known := taskUIDs[pred]; !known {
				violations.Add(issue.BrokenReferences,
					"Task '%s' has a PredecessorLink to non-existent TaskUID: %s", task.DisplayName(), pred)
			}
		}
	}
}

// CheckFormats verifies that project-level date fields and task-level
// date/duration fields are syntactically canonical.
func CheckFormats(doc *document.Document, violations *issue.List) {
	project := doc.Project()

	for _, field := range ProjectDateFields {
		text, ok := project.Field(field)
		if ok && text != "" && !ValidDate(text) {
			violations.Add(issue.DataFormats,
				"Invalid date format in <%s> for 'Project'. Got: '%s'", field, text)
		}
	}

	for _, task := range project.Tasks() {
		for _, field := range TaskDateFields {
			text, ok := task.Field(field)
			if ok && text != "" && !ValidDate(text) {
				violations.Add(issue.DataFormats,
					"Invalid date format in <%s> for '%s'. Got: '%s'", field, task.DisplayName(), text)
			}
		}
		for _, field := range TaskDurationFields {
			text, ok := task.Field(field)
			if ok && text != "" && !ValidDuration(text) {
				violations.Add(issue.DataFormats,
					"Invalid duration format in <%s> for '%s'. Got: '%s'", field, task.DisplayName(), text)
			}
		}
	}
}

// CheckCalendar resolves the base calendar and compares the declared
// MinutesPerWeek against the sum of working-time minutes over the calendar's
// working days. Documents without a MinutesPerWeek or CalendarUID are
// skipped: there is nothing to cross-check.
func CheckCalendar(doc *document.Document, violations *issue.List) {
	project := doc.Project()

	declared, present, err := project.MinutesPerWeek()
	if !present {
		return
	}
	if err != nil {
		violations.Add(issue.CalendarLogic, "Could not parse calendar logic: %v", err)
		return
	}

	calendarUID, ok := project.CalendarUID()
	if !ok {
		return
	}
	calendar, found := project.BaseCalendar()
	if !found {
		violations.Add(issue.BrokenReferences,
			"Project CalendarUID %s not found in <Calendars>.", calendarUID)
		return
	}

	calculated := 0
	for _, day := range calendar.WeekDays() {
		if !day.IsWorking() {
			continue
		}
		for _, interval := range day.WorkingTimes() {
			minutes, err := interval.Minutes()
			if err != nil {
				violations.Add(issue.CalendarLogic, "Could not parse calendar logic: %v", err)
				return
			}
			calculated += minutes
		}
	}

	if calculated != declared {
		violations.Add(issue.CalendarLogic,
			"<MinutesPerWeek> is %d, but base calendar calculates to %d.", declared, calculated)
	}
}
