package repair_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/projfix/internal/document"
	"github.com/ganot/projfix/internal/issue"
	"github.com/ganot/projfix/internal/repair"
)

func mustParse(t *testing.T, body string) *document.Document {
	t.Helper()
	xml := fmt.Sprintf(`<Project xmlns="http://schemas.microsoft.com/project">%s</Project>`, body)
	doc, err := document.Parse([]byte(xml))
	require.NoError(t, err)
	return doc
}

func link(pred string) string {
	return fmt.Sprintf("<PredecessorLink><PredecessorUID>%s</PredecessorUID><Type>1</Type></PredecessorLink>", pred)
}

const cycleBody = `
  <Tasks>
    <Task><UID>1</UID><Name>Plan</Name>` + `<PredecessorLink><PredecessorUID>3</PredecessorUID><Type>1</Type></PredecessorLink>` + `</Task>
    <Task><UID>2</UID><Name>Build</Name>` + `<PredecessorLink><PredecessorUID>1</PredecessorUID><Type>1</Type></PredecessorLink>` + `</Task>
    <Task><UID>3</UID><Name>Ship</Name>` + `<PredecessorLink><PredecessorUID>2</PredecessorUID><Type>1</Type></PredecessorLink>` + `</Task>
    <Task><UID>4</UID><Name>Retro</Name>` + `<PredecessorLink><PredecessorUID>3</PredecessorUID><Type>1</Type></PredecessorLink>` + `</Task>
  </Tasks>`

func TestDetectCyclesFindsCyclicTasks(t *testing.T) {
	doc := mustParse(t, cycleBody)
	require.Equal(t, []string{"1", "2", "3", "4"}, repair.DetectCycles(doc))
}

func TestDetectCyclesAcyclicGraph(t *testing.T) {
	doc := mustParse(t, `
  <Tasks>
    <Task><UID>1</UID></Task>
    <Task><UID>2</UID>`+link("1")+`</Task>
    <Task><UID>3</UID>`+link("2")+link("1")+`</Task>
  </Tasks>`)
	require.Nil(t, repair.DetectCycles(doc))
}

func TestDetectCyclesIgnoresDanglingPredecessors(t *testing.T) {
	doc := mustParse(t, `
  <Tasks>
    <Task><UID>1</UID>`+link("99")+`</Task>
    <Task><UID>2</UID>`+link("1")+`</Task>
  </Tasks>`)
	require.Nil(t, repair.DetectCycles(doc))
}

func TestCheckCyclesReportsSingleViolation(t *testing.T) {
	doc := mustParse(t, cycleBody)

	var violations issue.List
	require.True(t, repair.CheckCycles(doc, &violations))
	require.Equal(t, []string{
		"Circular dependency detected among tasks: 1, 2, 3, 4",
	}, violations.Messages(issue.CircularDeps))
}

func TestBreakCyclesRemovesInternalEdges(t *testing.T) {
	doc := mustParse(t, cycleBody)

	var violations, repairs issue.List
	repair.BreakCycles(doc, &violations, &repairs)

	require.Nil(t, repair.DetectCycles(doc))
	require.True(t, violations.Empty())
	require.Equal(t, []string{
		"Removed circular PredecessorLink from 'Plan' to UID 3",
		"Removed circular PredecessorLink from 'Build' to UID 1",
		"Removed circular PredecessorLink from 'Ship' to UID 2",
		"Removed circular PredecessorLink from 'Retro' to UID 3",
	}, repairs.Messages(issue.CircularDeps))

	// No task inside the former cycle keeps an edge to another member.
	for _, task := range doc.Project().Tasks() {
		require.Empty(t, task.Links())
	}
}

func TestBreakCyclesLeavesEdgesOutsideTheCycle(t *testing.T) {
	doc := mustParse(t, `
  <Tasks>
    <Task><UID>1</UID></Task>
    <Task><UID>2</UID>`+link("1")+link("3")+`</Task>
    <Task><UID>3</UID>`+link("2")+`</Task>
  </Tasks>`)

	var violations, repairs issue.List
	repair.BreakCycles(doc, &violations, &repairs)

	require.Nil(t, repair.DetectCycles(doc))
	require.Equal(t, 2, repairs.Len())

	tasks := doc.Project().Tasks()
	links := tasks[1].Links()
	require.Len(t, links, 1)
	require.Equal(t, "1", links[0].PredecessorUID())
}
