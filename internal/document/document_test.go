package document_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/projfix/internal/document"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<Project xmlns="http://schemas.microsoft.com/project">
  <Name>Demo</Name>
  <CalendarUID>1</CalendarUID>
  <MinutesPerWeek>2400</MinutesPerWeek>
  <Calendars>
    <Calendar>
      <UID>1</UID>
      <Name>Standard</Name>
      <IsBaseCalendar>1</IsBaseCalendar>
      <WeekDays>
        <WeekDay>
          <DayType>2</DayType>
          <DayWorking>1</DayWorking>
          <WorkingTimes>
            <WorkingTime><FromTime>08:00:00</FromTime><ToTime>12:00:00</ToTime></WorkingTime>
            <WorkingTime><FromTime>13:00:00</FromTime><ToTime>17:00:00</ToTime></WorkingTime>
          </WorkingTimes>
        </WeekDay>
        <WeekDay>
          <DayType>1</DayType>
          <DayWorking>0</DayWorking>
        </WeekDay>
      </WeekDays>
    </Calendar>
  </Calendars>
  <Tasks>
    <Task>
      <UID>1</UID>
      <Name>Summary</Name>
      <Summary>1</Summary>
      <OutlineLevel>1</OutlineLevel>
    </Task>
    <Task>
      <UID>2</UID>
      <Name>Child</Name>
      <OutlineLevel>2</OutlineLevel>
      <Start>2024-01-08T08:00:00</Start>
      <PredecessorLink><PredecessorUID>1</PredecessorUID><Type>1</Type></PredecessorLink>
    </Task>
  </Tasks>
  <Resources>
    <Resource><UID>7</UID><Name>Dev</Name></Resource>
  </Resources>
  <Assignments>
    <Assignment><UID>1</UID><TaskUID>2</TaskUID><ResourceUID>7</ResourceUID></Assignment>
  </Assignments>
</Project>`

func TestParseRejectsMalformedXML(t *testing.T) {
	_, err := document.Parse([]byte("<Project><Tasks>"))
	require.ErrorIs(t, err, document.ErrMalformed)
}

func TestParseRejectsWrongRoot(t *testing.T) {
	_, err := document.Parse([]byte(`<Schedule xmlns="http://schemas.microsoft.com/project"/>`))
	require.ErrorIs(t, err, document.ErrMalformed)
}

func TestParseRejectsWrongNamespace(t *testing.T) {
	_, err := document.Parse([]byte(`<Project xmlns="http://example.com/other"/>`))
	require.ErrorIs(t, err, document.ErrMalformed)
}

func TestTypedAccessors(t *testing.T) {
	doc, err := document.Parse([]byte(sampleXML))
	require.NoError(t, err)
	project := doc.Project()

	name, ok := project.Field("Name")
	require.True(t, ok)
	require.Equal(t, "Demo", name)

	calendarUID, ok := project.CalendarUID()
	require.True(t, ok)
	require.Equal(t, "1", calendarUID)

	minutes, present, err := project.MinutesPerWeek()
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, 2400, minutes)

	tasks := project.Tasks()
	require.Len(t, tasks, 2)
	require.Equal(t, 0, tasks[0].Index)
	require.Equal(t, 1, tasks[1].Index)
	require.True(t, tasks[0].IsSummary())
	require.False(t, tasks[1].IsSummary())
	require.Equal(t, 2, tasks[1].OutlineLevel())

	links := tasks[1].Links()
	require.Len(t, links, 1)
	require.Equal(t, "1", links[0].PredecessorUID())
	require.Equal(t, "1", links[0].Type())

	require.Len(t, project.Resources(), 1)
	require.Len(t, project.Assignments(), 1)

	calendar, found := project.BaseCalendar()
	require.True(t, found)
	require.Equal(t, "Standard", calendar.Name())
	require.True(t, calendar.IsBase())
	require.Equal(t, 1, calendar.WorkingDayCount())
}

func TestWorkingTimeMinutes(t *testing.T) {
	doc, err := document.Parse([]byte(sampleXML))
	require.NoError(t, err)
	calendar, found := doc.Project().BaseCalendar()
	require.True(t, found)

	days := calendar.WeekDays()
	require.Len(t, days, 2)
	require.True(t, days[0].IsWorking())
	require.False(t, days[1].IsWorking())

	total := 0
	for _, interval := range days[0].WorkingTimes() {
		minutes, err := interval.Minutes()
		require.NoError(t, err)
		total += minutes
	}
	require.Equal(t, 480, total)
}

func TestMutationOperations(t *testing.T) {
	doc, err := document.Parse([]byte(sampleXML))
	require.NoError(t, err)
	task := doc.Project().Tasks()[1]

	require.True(t, task.EnsureField("Priority", "500"))
	require.False(t, task.EnsureField("Priority", "999"))
	priority, _ := task.Field("Priority")
	require.Equal(t, "500", priority)

	require.True(t, task.RemoveField("Start"))
	require.False(t, task.RemoveField("Start"))
	require.False(t, task.HasField("Start"))

	task.AddLink("9", "1")
	links := task.Links()
	require.Len(t, links, 2)
	require.Equal(t, "9", links[1].PredecessorUID())
	task.RemoveLink(links[1])
	require.Len(t, task.Links(), 1)

	task.SetField("Name", "Renamed")
	require.Equal(t, "Renamed", task.Name())
}

func TestInsertFieldAfterKeepsOrdering(t *testing.T) {
	doc, err := document.Parse([]byte(sampleXML))
	require.NoError(t, err)
	task := doc.Project().Tasks()[1]

	task.InsertFieldAfter("Start", "Finish", "2024-01-09T17:00:00")
	data, err := doc.Bytes()
	require.NoError(t, err)
	text := string(data)
	start := "<Start>2024-01-08T08:00:00</Start>"
	finish := "<Finish>2024-01-09T17:00:00</Finish>"
	require.Contains(t, text, start)
	require.Contains(t, text, finish)
	require.Less(t, indexOf(text, start), indexOf(text, finish))
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
