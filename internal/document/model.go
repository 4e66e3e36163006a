package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// Project is the root entity of a document. Exactly one exists per document.
type Project struct {
	el *etree.Element
}

// Field returns the text of a direct child element, reporting whether the
// element is present.
func (p Project) Field(name string) (string, bool) {
	return childText(p.el, name)
}

// SetField sets the text of a direct child element, creating it at the end of
// the project when absent.
func (p Project) SetField(name, value string) {
	setChildText(p.el, name, value)
}

// HasField reports whether a direct child element exists.
func (p Project) HasField(name string) bool {
	return p.el.SelectElement(name) != nil
}

// InsertFieldAt inserts a new child element at the given child-element
// position. Used by repairs that must keep the target application's expected
// element ordering.
func (p Project) InsertFieldAt(index int, name, value string) {
	insertElementAt(p.el, index, name, value)
}

// FieldIndex returns the child-element position of the named field, or -1.
func (p Project) FieldIndex(name string) int {
	for i, child := range p.el.ChildElements() {
		if child.Tag == name {
			return i
		}
	}
	return -1
}

// CalendarUID returns the UID of the project's base calendar.
func (p Project) CalendarUID() (string, bool) {
	return childText(p.el, "CalendarUID")
}

// MinutesPerWeek returns the declared weekly working minutes.
func (p Project) MinutesPerWeek() (int, bool, error) {
	text, ok := childText(p.el, "MinutesPerWeek")
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, true, fmt.Errorf("invalid MinutesPerWeek %q: %w", text, err)
	}
	return n, true, nil
}

// MinutesPerDay returns the declared daily working minutes, defaulting to 480.
func (p Project) MinutesPerDay() int {
	text, ok := childText(p.el, "MinutesPerDay")
	if !ok {
		return 480
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 480
	}
	return n
}

// Tasks returns all tasks in document order. The returned Task values carry
// their document-order index so positional rules (such as "first child of a
// summary task") do not depend on tree-walk order.
func (p Project) Tasks() []Task {
	elements := p.el.FindElements(".//Task")
	tasks := make([]Task, 0, len(elements))
	for i, el := range elements {
		tasks = append(tasks, Task{el: el, Index: i})
	}
	return tasks
}

// Resources returns all resources in document order.
func (p Project) Resources() []Resource {
	elements := p.el.FindElements(".//Resource")
	resources := make([]Resource, 0, len(elements))
	for _, el := range elements {
		resources = append(resources, Resource{el: el})
	}
	return resources
}

// Assignments returns all assignments in document order.
func (p Project) Assignments() []Assignment {
	elements := p.el.FindElements(".//Assignment")
	assignments := make([]Assignment, 0, len(elements))
	for _, el := range elements {
		assignments = append(assignments, Assignment{el: el})
	}
	return assignments
}

// Calendars returns all calendars in document order.
func (p Project) Calendars() []Calendar {
	elements := p.el.FindElements(".//Calendar")
	calendars := make([]Calendar, 0, len(elements))
	for _, el := range elements {
		calendars = append(calendars, Calendar{el: el})
	}
	return calendars
}

// BaseCalendar resolves the calendar referenced by CalendarUID.
func (p Project) BaseCalendar() (Calendar, bool) {
	uid, ok := p.CalendarUID()
	if !ok {
		return Calendar{}, false
	}
	for _, cal := range p.Calendars() {
		if cal.UID() == uid {
			return cal, true
		}
	}
	return Calendar{}, false
}

// Task is a single schedule task.
type Task struct {
	el *etree.Element

	// Index is the task's position in document order.
	Index int
}

// UID returns the task's identifier, unique within the Tasks collection.
func (t Task) UID() string {
	text, _ := childText(t.el, "UID")
	return text
}

// Name returns the task's display name, which may be empty.
func (t Task) Name() string {
	text, _ := childText(t.el, "Name")
	return text
}

// DisplayName returns the task name, falling back to the UID for unnamed
// tasks so messages always identify the task.
func (t Task) DisplayName() string {
	if name := t.Name(); name != "" {
		return name
	}
	if uid := t.UID(); uid != "" {
		return "Task UID " + uid
	}
	return "Unknown Task"
}

// IsSummary reports whether the task is an aggregate (non-leaf) task.
func (t Task) IsSummary() bool {
	text, _ := childText(t.el, "Summary")
	return text == "1"
}

// IsMilestone reports whether the task is flagged as a milestone.
func (t Task) IsMilestone() bool {
	text, _ := childText(t.el, "Milestone")
	return text == "1"
}

// OutlineLevel returns the task's depth in the outline hierarchy, 0 when
// absent or unparseable.
func (t Task) OutlineLevel() int {
	text, ok := childText(t.el, "OutlineLevel")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return n
}

// OutlineNumber returns the task's hierarchical path string.
func (t Task) OutlineNumber() (string, bool) {
	return childText(t.el, "OutlineNumber")
}

// Field returns the text of a direct child element.
func (t Task) Field(name string) (string, bool) {
	return childText(t.el, name)
}

// HasField reports whether a direct child element exists.
func (t Task) HasField(name string) bool {
	return t.el.SelectElement(name) != nil
}

// SetField sets the text of a direct child element, creating it when absent.
func (t Task) SetField(name, value string) {
	setChildText(t.el, name, value)
}

// EnsureField creates the named child element with the given value when it is
// absent. It never touches an existing element, whatever its value. Returns
// true when an element was inserted.
func (t Task) EnsureField(name, value string) bool {
	if t.el.SelectElement(name) != nil {
		return false
	}
	el := t.el.CreateElement(name)
	el.SetText(value)
	return true
}

// RemoveField removes the named child element, reporting whether one existed.
func (t Task) RemoveField(name string) bool {
	child := t.el.SelectElement(name)
	if child == nil {
		return false
	}
	t.el.RemoveChild(child)
	return true
}

// InsertFieldAfter inserts a new child element immediately after the named
// sibling, or at the end when the sibling is absent.
func (t Task) InsertFieldAfter(after, name, value string) {
	ref := t.el.SelectElement(after)
	if ref == nil {
		el := t.el.CreateElement(name)
		el.SetText(value)
		return
	}
	el := etree.NewElement(name)
	el.SetText(value)
	t.el.InsertChildAt(ref.Index()+1, el)
}

// Links returns the task's predecessor links in document order.
func (t Task) Links() []PredecessorLink {
	elements := t.el.SelectElements("PredecessorLink")
	links := make([]PredecessorLink, 0, len(elements))
	for _, el := range elements {
		links = append(links, PredecessorLink{el: el})
	}
	return links
}

// AddLink attaches a new predecessor link to the task.
func (t Task) AddLink(predecessorUID, linkType string) {
	link := t.el.CreateElement("PredecessorLink")
	link.CreateElement("PredecessorUID").SetText(predecessorUID)
	link.CreateElement("Type").SetText(linkType)
}

// RemoveLink detaches a predecessor link from the task.
func (t Task) RemoveLink(link PredecessorLink) {
	t.el.RemoveChild(link.el)
}

// PredecessorLink is a directed dependency edge owned by exactly one task.
type PredecessorLink struct {
	el *etree.Element
}

// PredecessorUID returns the UID of the task this link depends on.
func (l PredecessorLink) PredecessorUID() string {
	text, _ := childText(l.el, "PredecessorUID")
	return text
}

// Type returns the dependency kind (0=FF, 1=FS, 2=SF, 3=SS), defaulting to
// finish-to-start when absent.
func (l PredecessorLink) Type() string {
	text, ok := childText(l.el, "Type")
	if !ok {
		return "1"
	}
	return text
}

// Resource is a project resource.
type Resource struct {
	el *etree.Element
}

// UID returns the resource's identifier, unique within the Resources
// collection.
func (r Resource) UID() string {
	text, _ := childText(r.el, "UID")
	return text
}

// Name returns the resource's display name.
func (r Resource) Name() string {
	text, _ := childText(r.el, "Name")
	return text
}

// Assignment maps a resource onto a task.
type Assignment struct {
	el *etree.Element
}

// UID returns the assignment's identifier.
func (a Assignment) UID() string {
	text, _ := childText(a.el, "UID")
	return text
}

// TaskUID returns the referenced task UID.
func (a Assignment) TaskUID() (string, bool) {
	return childText(a.el, "TaskUID")
}

// ResourceUID returns the referenced resource UID.
func (a Assignment) ResourceUID() (string, bool) {
	return childText(a.el, "ResourceUID")
}

// Calendar is a working-time definition.
type Calendar struct {
	el *etree.Element
}

// UID returns the calendar's identifier.
func (c Calendar) UID() string {
	text, _ := childText(c.el, "UID")
	return text
}

// Name returns the calendar's display name.
func (c Calendar) Name() string {
	text, _ := childText(c.el, "Name")
	return text
}

// IsBase reports whether the calendar is flagged as a base calendar.
func (c Calendar) IsBase() bool {
	text, _ := childText(c.el, "IsBaseCalendar")
	return text == "1"
}

// WeekDays returns the calendar's day-of-week entries in document order.
func (c Calendar) WeekDays() []WeekDay {
	elements := c.el.FindElements(".//WeekDay")
	days := make([]WeekDay, 0, len(elements))
	for _, el := range elements {
		days = append(days, WeekDay{el: el})
	}
	return days
}

// WorkingDayCount returns how many week days are flagged as working days.
func (c Calendar) WorkingDayCount() int {
	count := 0
	for _, day := range c.WeekDays() {
		if day.IsWorking() {
			count++
		}
	}
	return count
}

// WeekDay is one day-of-week entry within a calendar.
type WeekDay struct {
	el *etree.Element
}

// IsWorking reports whether the day is a working day.
func (d WeekDay) IsWorking() bool {
	text, _ := childText(d.el, "DayWorking")
	return text == "1"
}

// WorkingTimes returns the day's working intervals.
func (d WeekDay) WorkingTimes() []WorkingTime {
	elements := d.el.FindElements(".//WorkingTime")
	times := make([]WorkingTime, 0, len(elements))
	for _, el := range elements {
		times = append(times, WorkingTime{el: el})
	}
	return times
}

// WorkingTime is a single (from, to) wall-clock interval.
type WorkingTime struct {
	el *etree.Element
}

// From returns the interval's start time text.
func (w WorkingTime) From() string {
	text, _ := childText(w.el, "FromTime")
	return text
}

// To returns the interval's end time text.
func (w WorkingTime) To() string {
	text, _ := childText(w.el, "ToTime")
	return text
}

// Minutes returns the interval's length in whole minutes.
func (w WorkingTime) Minutes() (int, error) {
	from, err := parseClock(w.From())
	if err != nil {
		return 0, err
	}
	to, err := parseClock(w.To())
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Minutes()), nil
}

func parseClock(text string) (time.Time, error) {
	t, err := time.Parse("15:04:05", strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid working time %q: %w", text, err)
	}
	return t, nil
}

func childText(el *etree.Element, name string) (string, bool) {
	child := el.SelectElement(name)
	if child == nil {
		return "", false
	}
	return child.Text(), true
}

func setChildText(el *etree.Element, name, value string) {
	child := el.SelectElement(name)
	if child == nil {
		child = el.CreateElement(name)
	}
	child.SetText(value)
}

func insertElementAt(parent *etree.Element, index int, name, value string) {
	el := etree.NewElement(name)
	if value != "" {
		el.SetText(value)
	}
	children := parent.ChildElements()
	if index < 0 || index >= len(children) {
		parent.AddChild(el)
		return
	}
	parent.InsertChildAt(children[index].Index(), el)
}
