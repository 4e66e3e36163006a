// Package issue defines the violation and repair records accumulated by the
// validation pipeline. Violations and repairs are kept in separate lists: a
// violation is something wrong with the document, a repair is a mutation that
// was performed, and no record is ever both.
package issue

import "fmt"

// Category groups related records for reporting.
type Category string

const (
	DuplicateUIDs    Category = "Duplicate UIDs"
	BrokenReferences Category = "Broken References"
	DataFormats      Category = "Data Formats"
	CalendarLogic    Category = "Calendar Logic"
	CircularDeps     Category = "Circular Dependencies"
	SummaryTaskDeps  Category = "Summary Task Dependencies"
	DateConstraints  Category = "Date Constraints"
	EssentialFields  Category = "Essential Fields"
	ProjectMetadata  Category = "Project Metadata"
	Milestones       Category = "Incorrect Milestones"
	ZeroWork         Category = "Zero Work Tasks"
	FinishDates      Category = "Finish Date Calculation"
)

// CategoryOrder fixes the order categories appear in reports and repair logs,
// so output is reproducible for a given record set.
var CategoryOrder = []Category{
	DuplicateUIDs,
	BrokenReferences,
	DataFormats,
	CalendarLogic,
	CircularDeps,
	SummaryTaskDeps,
	DateConstraints,
	EssentialFields,
	ProjectMetadata,
	Milestones,
	ZeroWork,
	FinishDates,
}

// Record is a single violation or repair entry.
type Record struct {
	Category Category
	Message  string
}

// List accumulates records in insertion order.
type List struct {
	records []Record
}

// Add appends a formatted record.
func (l *List) Add(category Category, format string, args ...any) {
	l.records = append(l.records, Record{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Records returns all records in insertion order.
func (l *List) Records() []Record {
	return l.records
}

// Len returns the number of records.
func (l *List) Len() int {
	return len(l.records)
}

// Empty reports whether the list has no records.
func (l *List) Empty() bool {
	return len(l.records) == 0
}

// Messages returns the messages recorded under a category, in insertion
// order.
func (l *List) Messages(category Category) []string {
	var messages []string
	for _, record := range l.records {
		if record.Category == category {
			messages = append(messages, record.Message)
		}
	}
	return messages
}

// Categories returns the categories present in the list, in CategoryOrder.
func (l *List) Categories() []Category {
	present := map[Category]bool{}
	for _, record := range l.records {
		present[record.Category] = true
	}
	var out []Category
	for _, category := range CategoryOrder {
		if present[category] {
			out = append(out, category)
		}
	}
	return out
}

// Drop removes every record in the given category. Used by the orchestrator
// when a repair pass re-derives a category from the post-repair document
// state.
func (l *List) Drop(category Category) {
	kept := l.records[:0]
	for _, record := range l.records {
		if record.Category != category {
			kept = append(kept, record)
		}
	}
	l.records = kept
}
