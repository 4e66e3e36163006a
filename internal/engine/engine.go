// Package engine orchestrates validation and repair of a project document.
// The pipeline order is fixed; checks accumulate violations without halting,
// and repair mode mutates the single document instance the engine owns for
// the duration of a run.
package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/ganot/projfix/internal/document"
	"github.com/ganot/projfix/internal/issue"
	"github.com/ganot/projfix/internal/repair"
	"github.com/ganot/projfix/internal/validate"
)

// Mode selects between validation-only and validation-plus-repair runs.
type Mode int

const (
	// ModeValidate runs checks only and never mutates the document.
	ModeValidate Mode = iota
	// ModeRepair runs checks and then applies every repair pass.
	ModeRepair
)

// String returns the mode's wire/storage name.
func (m Mode) String() string {
	if m == ModeRepair {
		return "repair"
	}
	return "validate"
}

// Options configures a single run.
type Options struct {
	Mode Mode

	// ExemptUIDs are task UIDs whose explicit Start/Finish dates are kept
	// (hard-constrained or externally fixed dates).
	ExemptUIDs []string

	// DefaultTaskHours is the working-day length assigned to zero-work
	// tasks. Zero means the standard 8 hours.
	DefaultTaskHours int
}

// Result is the outcome of one run.
type Result struct {
	// RunID uniquely identifies the run, for logs and the history store.
	RunID string

	// Violations are the data-quality problems still present after the run.
	Violations issue.List

	// Repairs are the mutations performed. Empty in validation mode.
	Repairs issue.List

	// Doc is the document the run operated on; mutated only in repair mode.
	Doc *document.Document
}

// OK reports whether the document ended the run free of violations.
func (r *Result) OK() bool {
	return r.Violations.Empty()
}

// Engine runs the validation/repair pipeline.
type Engine struct {
	logger *slog.Logger
}

// New creates an engine. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Run executes the pipeline against doc. Document loading is the caller's
// responsibility (and the only fatal failure); everything here accumulates.
func (e *Engine) Run(doc *document.Document, opts Options) *Result {
	result := &Result{
		RunID: uuid.NewString(),
		Doc:   doc,
	}
	violations := &result.Violations
	repairs := &result.Repairs

	e.logger.Info("starting run", "run_id", result.RunID, "mode", opts.Mode.String())

	taskUIDs, resourceUIDs := validate.CheckUniqueUIDs(doc, violations)
	validate.CheckReferences(doc, taskUIDs, resourceUIDs, violations)
	validate.CheckFormats(doc, violations)
	validate.CheckCalendar(doc, violations)

	if opts.Mode == ModeValidate {
		repair.CheckCycles(doc, violations)
		e.logger.Info("validation complete", "run_id", result.RunID, "violations", violations.Len())
		return result
	}

	// Summary links move before cycle breaking: a relocated link can change
	// the graph, and breaking cycles afterwards is what guarantees the final
	// document is acyclic.
	repair.RelocateSummaryLinks(doc, violations, repairs)
	repair.BreakCycles(doc, violations, repairs)

	// Format repairs re-derive the Data Formats category: the pre-repair
	// violations are dropped and the normalizers record whatever remains
	// unrepairable in the post-repair document.
	violations.Drop(issue.DataFormats)
	repair.NormalizeDates(doc, violations, repairs)
	repair.NormalizeDurations(doc, violations, repairs)

	exempt := make(map[string]struct{}, len(opts.ExemptUIDs))
	for _, uid := range opts.ExemptUIDs {
		exempt[uid] = struct{}{}
	}
	repair.StripExplicitDates(doc, exempt, repairs)
	repair.EnsureEssentialFields(doc, repairs)

	repair.FixMilestones(doc, repairs)
	repair.FixZeroWorkTasks(doc, opts.DefaultTaskHours, repairs)
	repair.FillFinishDates(doc, repairs)
	repair.AddProjectMetadata(doc, repairs)

	e.logger.Info("repair complete",
		"run_id", result.RunID,
		"violations", violations.Len(),
		"repairs", repairs.Len())
	return result
}
