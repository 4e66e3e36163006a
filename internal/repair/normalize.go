package repair

import (
	"regexp"
	"strings"
	"time"

	"github.com/ganot/projfix/internal/document"
	"github.com/ganot/projfix/internal/issue"
	"github.com/ganot/projfix/internal/validate"
)

// permissiveDateLayouts are the forms accepted when re-parsing a
// non-canonical date field. Zone offsets and "Z" suffixes are tolerated and
// dropped on rewrite.
var permissiveDateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var (
	// A stray word token embedded mid-number, e.g. "PT4TwoH0M0S".
	strayWordRe = regexp.MustCompile(`PT(\d+)Two`)
	// A letter O typed in place of a zero digit, e.g. "PT4H1O0M0S".
	letterZeroRe = regexp.MustCompile(`(\d)[Oo](\d)`)
)

// NormalizeDates rewrites non-canonical but parseable date fields to the
// canonical YYYY-MM-DDTHH:MM:SS form. Fields that cannot be parsed even
// permissively are left untouched and recorded as unrepaired violations.
// Each field is considered on its own; no cross-field inference.
func NormalizeDates(doc *document.Document, violations, repairs *issue.List) {
	project := doc.Project()

	for _, field := range validate.ProjectDateFields {
		text, ok := project.Field(field)
		if !ok || text == "" || validate.ValidDate(text) {
			continue
		}
		if fixed, parsed := reparseDate(text); parsed {
			project.SetField(field, fixed)
			repairs.Add(issue.DataFormats,
				"Fixed date format in <%s> for 'Project': '%s' -> '%s'", field, text, fixed)
		} else {
			violations.Add(issue.DataFormats,
				"Could not fix invalid date format in <%s> for 'Project': '%s'", field, text)
		}
	}

	for _, task := range project.Tasks() {
		for _, field := range validate.TaskDateFields {
			text, ok := task.Field(field)
			if !ok || text == "" || validate.ValidDate(text) {
				continue
			}
			if fixed, parsed := reparseDate(text); parsed {
				task.SetField(field, fixed)
				repairs.Add(issue.DataFormats,
					"Fixed date format in <%s> for '%s': '%s' -> '%s'", field, task.DisplayName(), text, fixed)
			} else {
				violations.Add(issue.DataFormats,
					"Could not fix invalid date format in <%s> for '%s': '%s'", field, task.DisplayName(), text)
			}
		}
	}
}

func reparseDate(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	for _, layout := range permissiveDateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format(validate.DateLayout), true
		}
	}
	return "", false
}

// NormalizeDurations applies the known typo corrections to task duration
// fields and re-tests against the canonical pattern. Fields still invalid
// after correction are recorded as unrepaired violations.
func NormalizeDurations(doc *document.Document, violations, repairs *issue.List) {
	for _, task := range doc.Project().Tasks() {
		for _, field := range validate.TaskDurationFields {
			text, ok := task.Field(field)
			if !ok || text == "" {
				continue
			}
			fixed := strayWordRe.ReplaceAllString(text, "PT$1")
			fixed = letterZeroRe.ReplaceAllString(fixed, "${1}0${2}")
			if fixed != text {
				task.SetField(field, fixed)
				repairs.Add(issue.DataFormats,
					"Fixed duration typo in <%s> for '%s': '%s' -> '%s'", field, task.DisplayName(), text, fixed)
			}
			if !validate.ValidDuration(fixed) {
				violations.Add(issue.DataFormats,
					"Invalid duration format in <%s> for '%s': '%s'", field, task.DisplayName(), fixed)
			}
		}
	}
}
