// Package report renders run results: the human-readable violation report
// and the repair log block written next to a repaired document. Rendering is
// pure text assembly; given the same record lists the output is identical
// byte for byte.
package report

import (
	"fmt"
	"strings"

	"github.com/ganot/projfix/internal/engine"
	"github.com/ganot/projfix/internal/issue"
)

const banner = "================================================================"

// RenderValidation formats the violation report, ordered by category. An
// empty report states that validation passed.
func RenderValidation(result *engine.Result) string {
	var b strings.Builder

	if result.OK() {
		b.WriteString("VALIDATION PASSED\n")
		if !result.Repairs.Empty() {
			fmt.Fprintf(&b, "All issues successfully repaired (%d repairs made).\n", result.Repairs.Len())
		} else {
			b.WriteString("File is well-formed, all references are valid, and formats are correct.\n")
		}
		return b.String()
	}

	b.WriteString("VALIDATION FAILED\n")
	for _, category := range result.Violations.Categories() {
		messages := result.Violations.Messages(category)
		fmt.Fprintf(&b, "\n%s (%d errors):\n", category, len(messages))
		for _, message := range messages {
			fmt.Fprintf(&b, "  - %s\n", message)
		}
	}
	if !result.Repairs.Empty() {
		fmt.Fprintf(&b, "\nRepairs made: %d total\n", result.Repairs.Len())
	}
	return b.String()
}

// RepairLog formats the repair log block: a fixed comment banner, the
// repairs grouped by category, and a final status line. The block is
// reproducible bit for bit for a given pair of record lists.
func RepairLog(repairs, violations *issue.List) string {
	var b strings.Builder

	b.WriteString("<!-- " + banner + "\n")
	b.WriteString("     PROJECT FILE REPAIR LOG\n")
	b.WriteString("     Generated by projfix\n")
	b.WriteString("     " + banner + "\n\n")

	b.WriteString("REPAIRS MADE:\n")
	if repairs.Empty() {
		b.WriteString("\n(none)\n")
	}
	for _, category := range repairs.Categories() {
		messages := repairs.Messages(category)
		fmt.Fprintf(&b, "\n%s: (%d repairs)\n", category, len(messages))
		for _, message := range messages {
			fmt.Fprintf(&b, "  - %s\n", message)
		}
	}

	b.WriteString("\n")
	if violations.Empty() {
		b.WriteString("STATUS: All issues successfully repaired.\n")
	} else {
		fmt.Fprintf(&b, "STATUS: %d issues remain unrepaired:\n", violations.Len())
		for _, category := range violations.Categories() {
			for _, message := range violations.Messages(category) {
				fmt.Fprintf(&b, "  - [%s] %s\n", category, message)
			}
		}
	}
	b.WriteString("-->\n")

	return b.String()
}
