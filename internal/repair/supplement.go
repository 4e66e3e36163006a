package repair

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/ganot/projfix/internal/document"
	"github.com/ganot/projfix/internal/issue"
	"github.com/ganot/projfix/internal/validate"
)

const zeroDuration = "PT0H0M0S"

var durationPartsRe = regexp.MustCompile(`^PT(\d+)H(\d+)M(\d+)S$`)

// durationMinutes converts a canonical duration to minutes. Non-canonical
// text yields zero.
func durationMinutes(text string) float64 {
	match := durationPartsRe.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	return float64(hours)*60 + float64(minutes) + float64(seconds)/60
}

// DurationText renders a whole number of hours as a canonical duration.
func DurationText(hours int) string {
	return fmt.Sprintf("PT%dH0M0S", hours)
}

// FixMilestones clears the milestone flag on non-summary tasks that carry
// non-zero duration or work: a task that takes time is not a milestone.
func FixMilestones(doc *document.Document, repairs *issue.List) {
	for _, task := range doc.Project().Tasks() {
		if task.IsSummary() || !task.IsMilestone() {
			continue
		}
		duration, hasDuration := task.Field("Duration")
		work, hasWork := task.Field("Work")
		nonZeroDuration := hasDuration && duration != zeroDuration
		nonZeroWork := hasWork && work != zeroDuration
		if !nonZeroDuration && !nonZeroWork {
			continue
		}
		if !hasDuration {
			duration = "None"
		}
		if !hasWork {
			work = "None"
		}
		task.RemoveField("Milestone")
		repairs.Add(issue.Milestones,
			"Removed incorrect <Milestone> flag from work task: '%s' (UID %s, Duration=%s, Work=%s)",
			task.DisplayName(), task.UID(), duration, work)
	}
}

// FixZeroWorkTasks assigns a default working day to non-summary,
// non-milestone tasks whose duration and work are both zero or absent, so
// they occupy schedule time after import.
func FixZeroWorkTasks(doc *document.Document, defaultHours int, repairs *issue.List) {
	if defaultHours <= 0 {
		defaultHours = 8
	}
	fallback := DurationText(defaultHours)
	for _, task := range doc.Project().Tasks() {
		if task.IsSummary() || task.IsMilestone() {
			continue
		}
		duration, hasDuration := task.Field("Duration")
		if !hasDuration || duration != zeroDuration {
			continue
		}
		work, hasWork := task.Field("Work")
		if hasWork && work != zeroDuration {
			continue
		}
		task.SetField("Duration", fallback)
		task.SetField("Work", fallback)
		repairs.Add(issue.ZeroWork,
			"Assigned default %d-hour duration/work to zeroed-out task: '%s' (UID %s)",
			defaultHours, task.DisplayName(), task.UID())
	}
}

// FillFinishDates computes a Finish for tasks that have a Start and a
// Duration but no Finish, converting the duration through MinutesPerDay and
// the base calendar's working-day count. This is the source tool's simple
// arithmetic, not dependency-driven scheduling: it only fills the gap the
// target application would otherwise reject.
func FillFinishDates(doc *document.Document, repairs *issue.List) {
	project := doc.Project()
	minutesPerDay := project.MinutesPerDay()

	workingDays := 5
	if calendar, ok := project.BaseCalendar(); ok {
		if count := calendar.WorkingDayCount(); count > 0 {
			workingDays = count
		}
	}

	for _, task := range project.Tasks() {
		if task.IsSummary() || task.IsMilestone() {
			continue
		}
		start, hasStart := task.Field("Start")
		duration, hasDuration := task.Field("Duration")
		if !hasStart || !hasDuration || task.HasField("Finish") {
			continue
		}
		startTime, err := time.Parse(validate.DateLayout, start)
		if err != nil {
			continue
		}
		workingDaysNeeded := durationMinutes(duration) / float64(minutesPerDay)
		calendarDays := workingDaysNeeded * (7 / float64(workingDays))
		finish := startTime.Add(time.Duration(calendarDays * 24 * float64(time.Hour)))
		finishText := finish.Format(validate.DateLayout)
		task.InsertFieldAfter("Start", "Finish", finishText)
		repairs.Add(issue.FinishDates,
			"Calculated Finish date for '%s': %s (Start: %s, Duration: %s)",
			task.DisplayName(), finishText, start, duration)
	}
}
