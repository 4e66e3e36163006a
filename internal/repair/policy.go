package repair

import (
	"github.com/ganot/projfix/internal/document"
	"github.com/ganot/projfix/internal/issue"
)

// EssentialTaskFields lists the optional task fields the target application
// requires, with their documented defaults. Order matters only for output
// determinism.
var EssentialTaskFields = []struct {
	Name    string
	Default string
}{
	{"PercentComplete", "0"},
	{"PercentWorkComplete", "0"},
	{"Active", "1"},
	{"Manual", "0"},
	{"Estimated", "0"},
	{"IsNull", "0"},
	{"DurationFormat", "7"},
	{"Priority", "500"},
	{"Critical", "0"},
}

// RelocateSummaryLinks enforces the rule that a summary task carries no
// predecessor links. Each link found on a summary task is moved to the
// summary's first child: the first non-summary task that follows it in
// document order at a deeper outline level, stopping at the first task back
// at or above the summary's own level. A summary with no such child has the
// link dropped and recorded as an unrepairable broken reference instead of
// inventing a target.
func RelocateSummaryLinks(doc *document.Document, violations, repairs *issue.List) {
	tasks := doc.Project().Tasks()

	for i, task := range tasks {
		if !task.IsSummary() {
			continue
		}
		links := task.Links()
		if len(links) == 0 {
			continue
		}

		level := task.OutlineLevel()
		var child *document.Task
		for j := i + 1; j < len(tasks); j++ {
			next := tasks[j]
			if next.OutlineLevel() <= level {
				break
			}
			if !next.IsSummary() {
				child = &next
				break
			}
		}

		if child == nil {
			for _, link := range links {
				pred := link.PredecessorUID()
				task.RemoveLink(link)
				violations.Add(issue.BrokenReferences,
					"Summary task '%s' (UID %s) had a PredecessorLink to UID %s and no child task to receive it",
					task.DisplayName(), task.UID(), pred)
			}
			continue
		}

		for _, link := range links {
			pred := link.PredecessorUID()
			if hasPredecessor(*child, pred) {
				task.RemoveLink(link)
				repairs.Add(issue.SummaryTaskDeps,
					"Removed duplicate PredecessorLink from summary task '%s' (UID %s), first child already has predecessor UID %s",
					task.DisplayName(), task.UID(), pred)
				continue
			}
			child.AddLink(pred, link.Type())
			task.RemoveLink(link)
			repairs.Add(issue.SummaryTaskDeps,
				"Moved PredecessorLink from summary task '%s' (UID %s) to first child '%s' (UID %s), predecessor UID %s",
				task.DisplayName(), task.UID(), child.DisplayName(), child.UID(), pred)
		}
	}
}

func hasPredecessor(task document.Task, uid string) bool {
	for _, link := range task.Links() {
		if link.PredecessorUID() == uid {
			return true
		}
	}
	return false
}

// StripExplicitDates removes explicit Start and Finish values from every task
// not in the exempt set, so the target application computes dates from
// durations and dependencies. The exempt set is caller-supplied configuration
// for tasks with genuinely hard-constrained dates.
func StripExplicitDates(doc *document.Document, exempt map[string]struct{}, repairs *issue.List) {
	for _, task := range doc.Project().Tasks() {
		if _, keep := exempt[task.UID()]; keep {
			continue
		}
		if task.RemoveField("Start") {
			repairs.Add(issue.DateConstraints,
				"Removed explicit <Start> date from '%s' (UID %s) to allow schedule calculation",
				task.DisplayName(), task.UID())
		}
		if task.RemoveField("Finish") {
			repairs.Add(issue.DateConstraints,
				"Removed explicit <Finish> date from '%s' (UID %s) to allow schedule calculation",
				task.DisplayName(), task.UID())
		}
	}
}

// EnsureEssentialFields inserts the essential task-level fields with their
// defaults wherever they are absent, plus a WBS copied from OutlineNumber.
// Strictly additive: an existing field is never overwritten, whatever its
// value. One aggregate repair is logged when anything was added.
func EnsureEssentialFields(doc *document.Document, repairs *issue.List) {
	added := 0
	for _, task := range doc.Project().Tasks() {
		for _, field := range EssentialTaskFields {
			if task.EnsureField(field.Name, field.Default) {
				added++
			}
		}
		if !task.HasField("WBS") {
			if outline, ok := task.OutlineNumber(); ok {
				task.SetField("WBS", outline)
				added++
			}
		}
	}
	if added > 0 {
		repairs.Add(issue.EssentialFields,
			"Added %d essential task-level fields (PercentComplete, DurationFormat, Priority, etc.)", added)
	}
}
