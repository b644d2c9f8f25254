// Package model holds the business-hours data model and its wire representation.
package model

import (
	"fmt"
	"strings"
)

// Day identifies a day of the week, Monday first.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllDays lists every day in display order.
var AllDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays are the days edited together in uniform mode.
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

// WeekendDays are toggled by the weekend switch.
var WeekendDays = []Day{Saturday, Sunday}

var dayNames = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// String returns the lowercase wire key of the day ("monday").
func (d Day) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("day(%d)", int(d))
	}
	return dayNames[d]
}

// Title returns the capitalized day name used in messages ("Monday").
func (d Day) Title() string {
	s := d.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// IsWeekend reports whether d is Saturday or Sunday.
func (d Day) IsWeekend() bool {
	return d == Saturday || d == Sunday
}

// ParseDay parses a wire key such as "monday" (case-insensitive).
func ParseDay(s string) (Day, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range dayNames {
		if name == key {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}

// Field selects one end of a TimeWindow.
type Field string

const (
	StartTime Field = "start_time"
	EndTime   Field = "end_time"
)

// ParseField parses "start_time" or "end_time".
func ParseField(s string) (Field, error) {
	switch Field(strings.TrimSpace(s)) {
	case StartTime:
		return StartTime, nil
	case EndTime:
		return EndTime, nil
	}
	return "", fmt.Errorf("unknown field %q, expected start_time or end_time", s)
}

// TimeWindow is one contiguous opening window.
type TimeWindow struct {
	StartTime string `json:"start_time"` // "09:00"
	EndTime   string `json:"end_time"`   // "17:00"
}

// DefaultWindow is used for new schedules and newly opened weekend days.
var DefaultWindow = TimeWindow{StartTime: "09:00", EndTime: "17:00"}

// Get returns the value of field f.
func (w TimeWindow) Get(f Field) string {
	if f == EndTime {
		return w.EndTime
	}
	return w.StartTime
}

// With returns a copy of w with field f set to value.
func (w TimeWindow) With(f Field, value string) TimeWindow {
	if f == EndTime {
		w.EndTime = value
	} else {
		w.StartTime = value
	}
	return w
}

// IsEmpty reports whether neither time is set.
func (w TimeWindow) IsEmpty() bool {
	return w.StartTime == "" && w.EndTime == ""
}

// IsComplete reports whether both times are set.
func (w TimeWindow) IsComplete() bool {
	return w.StartTime != "" && w.EndTime != ""
}

// IsOrdered reports whether a complete window starts before it ends.
// Times are zero-padded 24h strings, so lexical order is chronological.
func (w TimeWindow) IsOrdered() bool {
	return w.IsComplete() && w.StartTime < w.EndTime
}

// DayHours is the state of a single day. A closed day never carries a window.
type DayHours struct {
	Open   bool
	Window TimeWindow
}

// WeeklySchedule is the operating schedule of one company.
// It is a value type; copies are independent and comparable with ==.
type WeeklySchedule struct {
	days [7]DayHours
}

// DefaultSchedule returns Mon-Fri open with DefaultWindow and the weekend closed.
func DefaultSchedule() WeeklySchedule {
	var s WeeklySchedule
	for _, d := range Weekdays {
		s.Open(d, DefaultWindow)
	}
	return s
}

// Hours returns the state of day d.
func (s *WeeklySchedule) Hours(d Day) DayHours {
	return s.days[d]
}

// Window returns the window of d and whether the day is open.
func (s *WeeklySchedule) Window(d Day) (TimeWindow, bool) {
	h := s.days[d]
	return h.Window, h.Open
}

// IsOpen reports whether day d is open.
func (s *WeeklySchedule) IsOpen(d Day) bool {
	return s.days[d].Open
}

// Open sets day d to the given window.
func (s *WeeklySchedule) Open(d Day, w TimeWindow) {
	s.days[d] = DayHours{Open: true, Window: w}
}

// Close marks day d closed and drops its window.
func (s *WeeklySchedule) Close(d Day) {
	s.days[d] = DayHours{}
}

// WeekdaysUniform reports whether all five weekdays have the same state.
func (s *WeeklySchedule) WeekdaysUniform() bool {
	first := s.days[Monday]
	for _, d := range Weekdays[1:] {
		if s.days[d] != first {
			return false
		}
	}
	return true
}

// AllWeekdaysClosed reports whether no weekday is open.
func (s *WeeklySchedule) AllWeekdaysClosed() bool {
	for _, d := range Weekdays {
		if s.days[d].Open {
			return false
		}
	}
	return true
}

// WeeklyScheduleWire is the JSON shape exchanged with the onboarding API.
// A nil slice (JSON null) means closed; a one-element slice means open.
type WeeklyScheduleWire struct {
	Monday    []TimeWindow `json:"monday"`
	Tuesday   []TimeWindow `json:"tuesday"`
	Wednesday []TimeWindow `json:"wednesday"`
	Thursday  []TimeWindow `json:"thursday"`
	Friday    []TimeWindow `json:"friday"`
	Saturday  []TimeWindow `json:"saturday"`
	Sunday    []TimeWindow `json:"sunday"`
}

func (w *WeeklyScheduleWire) slot(d Day) *[]TimeWindow {
	switch d {
	case Monday:
		return &w.Monday
	case Tuesday:
		return &w.Tuesday
	case Wednesday:
		return &w.Wednesday
	case Thursday:
		return &w.Thursday
	case Friday:
		return &w.Friday
	case Saturday:
		return &w.Saturday
	default:
		return &w.Sunday
	}
}

// Get returns the wire value for day d.
func (w *WeeklyScheduleWire) Get(d Day) []TimeWindow {
	return *w.slot(d)
}

// Set replaces the wire value for day d.
func (w *WeeklyScheduleWire) Set(d Day, windows []TimeWindow) {
	*w.slot(d) = windows
}

// ToWire maps a schedule to its wire shape.
func ToWire(s WeeklySchedule) WeeklyScheduleWire {
	var w WeeklyScheduleWire
	for _, d := range AllDays {
		if win, open := s.Window(d); open {
			w.Set(d, []TimeWindow{win})
		}
	}
	return w
}

// FromWire maps the wire shape back to a schedule. Null, empty lists and
// windows with both times blank are read as closed. Only the first window
// of a day is used.
func FromWire(w WeeklyScheduleWire) WeeklySchedule {
	var s WeeklySchedule
	for _, d := range AllDays {
		windows := w.Get(d)
		if len(windows) == 0 || windows[0].IsEmpty() {
			continue
		}
		s.Open(d, windows[0])
	}
	return s
}
