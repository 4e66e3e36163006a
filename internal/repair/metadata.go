package repair

import (
	"github.com/ganot/projfix/internal/document"
	"github.com/ganot/projfix/internal/issue"
)

// projectMetadataFields are the project-level configuration fields the target
// application expects to find, with the defaults it tolerates. Inserted in
// this order immediately after MinutesPerWeek (or before Calendars when that
// anchor is missing) to keep the schema's element ordering plausible.
var projectMetadataFields = []struct {
	Name    string
	Default string
}{
	{"SaveVersion", "14"},
	{"BuildNumber", "16.0.14326.20454"},
	{"FYStartDate", "1"},
	{"CriticalSlackLimit", "0"},
	{"DaysPerMonth", "20"},
	{"CurrencyDigits", "2"},
	{"CurrencySymbol", "$"},
	{"CurrencyCode", "USD"},
	{"CurrencySymbolPosition", "0"},
	{"DefaultTaskType", "0"},
	{"DefaultFixedCostAccrual", "3"},
	{"DefaultStandardRate", "0"},
	{"DefaultOvertimeRate", "0"},
	{"DurationFormat", "7"},
	{"WorkFormat", "2"},
	{"EditableActualCosts", "0"},
	{"HonorConstraints", "0"},
	{"InsertedProjectsLikeSummary", "0"},
	{"MultipleCriticalPaths", "0"},
	{"NewTasksEffortDriven", "0"},
	{"NewTasksEstimated", "1"},
	{"SplitsInProgressTasks", "1"},
	{"SpreadActualCost", "0"},
	{"SpreadPercentComplete", "0"},
	{"TaskUpdatesResource", "1"},
	{"FiscalYearStart", "0"},
	{"WeekStartDay", "0"},
	{"MoveCompletedEndsBack", "0"},
	{"MoveRemainingStartsBack", "0"},
	{"MoveRemainingStartsForward", "0"},
	{"MoveCompletedEndsForward", "0"},
	{"BaselineForEarnedValue", "0"},
	{"AutoAddNewResourcesAndTasks", "1"},
	{"MicrosoftProjectServerURL", "1"},
	{"Autolink", "0"},
	{"NewTaskStartDate", "0"},
	{"NewTasksAreManual", "1"},
	{"DefaultTaskEVMethod", "0"},
	{"ProjectExternallyEdited", "0"},
	{"ExtendedCreationDate", "1984-01-01T00:00:00"},
	{"ActualsInSync", "0"},
	{"RemoveFileProperties", "0"},
	{"AdminProject", "0"},
	{"UpdateManuallyScheduledTasksWhenEditingLinks", "1"},
	{"KeepTaskOnNearestWorkingTimeWhenMadeAutoScheduled", "0"},
}

// structuralContainers are the empty container elements the target
// application expects to exist, inserted just before Calendars.
var structuralContainers = []string{
	"Views", "Filters", "Groups", "Tables", "Maps", "Reports",
	"Drawings", "DataLinks", "VBAProjects", "OutlineCodes",
	"WBSMasks", "ExtendedAttributes",
}

// AddProjectMetadata inserts missing project-level configuration fields and
// empty structural containers. Additive only; one aggregate repair is logged.
func AddProjectMetadata(doc *document.Document, repairs *issue.List) {
	project := doc.Project()
	added := 0

	insertAt := project.FieldIndex("MinutesPerWeek")
	if insertAt >= 0 {
		insertAt++
	} else if at := project.FieldIndex("Calendars"); at >= 0 {
		insertAt = at
	} else if at := project.FieldIndex("CurrentDate"); at >= 0 {
		insertAt = at + 1
	} else {
		insertAt = 0
	}

	for _, field := range projectMetadataFields {
		if project.HasField(field.Name) {
			continue
		}
		project.InsertFieldAt(insertAt, field.Name, field.Default)
		insertAt++
		added++
	}

	if calendarsAt := project.FieldIndex("Calendars"); calendarsAt >= 0 {
		for _, name := range structuralContainers {
			if project.HasField(name) {
				continue
			}
			project.InsertFieldAt(calendarsAt, name, "")
			calendarsAt++
			added++
		}
	}

	if added > 0 {
		repairs.Add(issue.ProjectMetadata,
			"Added %d essential project configuration fields (DurationFormat, WorkFormat, NewTasksAreManual, etc.)", added)
	}
}
