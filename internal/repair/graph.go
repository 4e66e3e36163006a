// Package repair holds the mutations the engine may apply to a project
// document: cycle breaking, format normalization, schedule policy fixes, and
// the field defaulting the target application depends on. Every repair is
// logged, deterministic, and idempotent: running the full set twice leaves
// the document unchanged on the second pass.
package repair

import (
	"sort"
	"strings"

	"github.com/ganot/projfix/internal/document"
	"github.com/ganot/projfix/internal/issue"
)

// DetectCycles runs Kahn's algorithm over the task-predecessor graph (edge
// predecessor -> successor) and returns the sorted UIDs of tasks left with
// residual in-degree, i.e. the tasks implicated in at least one cycle. An
// empty result means the graph is acyclic.
func DetectCycles(doc *document.Document) []string {
	tasks := doc.Project().Tasks()

	inDegree := map[string]int{}
	successors := map[string][]string{}
	order := make([]string, 0, len(tasks))
	for _, task := range tasks {
		uid := task.UID()
		if uid == "" {
			continue
		}
		if _, seen := inDegree[uid]; seen {
			continue
		}
		inDegree[uid] = 0
		order = append(order, uid)
	}
	for _, task := range tasks {
		uid := task.UID()
		if uid == "" {
			continue
		}
		for _, link := range task.Links() {
			pred := link.PredecessorUID()
			if _, known := inDegree[pred]; !known {
				// Broken reference, reported elsewhere; not an edge.
				continue
			}
			successors[pred] = append(successors[pred], uid)
			inDegree[uid]++
		}
	}

	var queue []string
	for _, uid := range order {
		if inDegree[uid] == 0 {
			queue = append(queue, uid)
		}
	}
	removed := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		removed++
		for _, next := range successors[current] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if removed == len(order) {
		return nil
	}

	var residual []string
	for _, uid := range order {
		if inDegree[uid] > 0 {
			residual = append(residual, uid)
		}
	}
	sort.Strings(residual)
	return residual
}

// CheckCycles reports a single violation naming every task implicated in a
// cycle. It never mutates the document.
func CheckCycles(doc *document.Document, violations *issue.List) bool {
	residual := DetectCycles(doc)
	if len(residual) == 0 {
		return false
	}
	violations.Add(issue.CircularDeps,
		"Circular dependency detected among tasks: %s", strings.Join(residual, ", "))
	return true
}

// BreakCycles removes every PredecessorLink whose owner and predecessor are
// both inside the residual cyclic set. This deletes more edges than the
// minimum feedback set when a cycle has incidental internal edges; the
// over-deletion is deliberate, trading minimal edits for a repair that is
// simple, safe, and provably breaks every cycle in one pass. Detection is
// re-run afterwards and any surviving cycle is recorded as unrepairable.
func BreakCycles(doc *document.Document, violations, repairs *issue.List) {
	residual := DetectCycles(doc)
	if len(residual) == 0 {
		return
	}

	cyclic := map[string]struct{}{}
	for _, uid := range residual {
		cyclic[uid] = struct{}{}
	}

	for _, task := range doc.Project().Tasks() {
		if _, in := cyclic[task.UID()]; !in {
			continue
		}
		for _, link := range task.Links() {
			pred := link.PredecessorUID()
			if _, in := cyclic[pred]; !in {
				continue
			}
			task.RemoveLink(link)
			repairs.Add(issue.CircularDeps,
				"Removed circular PredecessorLink from '%s' to UID %s", task.DisplayName(), pred)
		}
	}

	if remaining := DetectCycles(doc); len(remaining) > 0 {
		violations.Add(issue.CircularDeps,
			"Circular dependency could not be repaired; tasks still in a cycle: %s",
			strings.Join(remaining, ", "))
	}
}
