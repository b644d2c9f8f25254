// Package hours implements the business-hours form state: the weekly schedule,
// the uniform/per-day weekday mode and the weekend switch.
package hours

import (
	"errors"
	"fmt"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/model"
)

// Mode selects how weekdays are edited.
type Mode string

const (
	ModeUniform Mode = "uniform"
	ModePerDay  Mode = "per_day"
)

// ParseMode parses "uniform" or "per_day".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeUniform:
		return ModeUniform, nil
	case ModePerDay:
		return ModePerDay, nil
	}
	return "", fmt.Errorf("unknown mode %q, expected uniform or per_day", s)
}

// ErrNotUniform is returned when the common weekday window is edited in per-day mode.
var ErrNotUniform = errors.New("common weekday window can only be edited in uniform mode")

// ErrNotWeekend is returned when a weekday is passed to SetWeekendDay.
var ErrNotWeekend = errors.New("only saturday and sunday have an open switch")

// ChangeFunc receives the wire payload after every mutation.
type ChangeFunc func(model.WeeklyScheduleWire)

// Manager owns the editable weekly schedule of one form.
// It is not safe for concurrent use; callers serialize access.
type Manager struct {
	schedule     model.WeeklySchedule
	mode         Mode
	common       model.TimeWindow
	saturdayOpen bool
	sundayOpen   bool
	onChange     ChangeFunc
}

// Option configures a Manager.
type Option func(*Manager)

// WithChangeListener registers fn to receive the payload after every mutation.
func WithChangeListener(fn ChangeFunc) Option {
	return func(m *Manager) {
		m.onChange = fn
	}
}

// NewManager returns a manager holding the default schedule in uniform mode.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		schedule: model.DefaultSchedule(),
		mode:     ModeUniform,
		common:   model.DefaultWindow,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.derive()
	return m
}

// Schedule returns a copy of the current schedule.
func (m *Manager) Schedule() model.WeeklySchedule {
	return m.schedule
}

// Mode returns the weekday editing mode.
func (m *Manager) Mode() Mode {
	return m.mode
}

// CommonWeekdayTime returns the window edited by the uniform weekday control.
func (m *Manager) CommonWeekdayTime() model.TimeWindow {
	return m.common
}

// SaturdayOpen reports the Saturday switch.
func (m *Manager) SaturdayOpen() bool {
	return m.saturdayOpen
}

// SundayOpen reports the Sunday switch.
func (m *Manager) SundayOpen() bool {
	return m.sundayOpen
}

// OpenOnWeekends reports the aggregate weekend switch.
func (m *Manager) OpenOnWeekends() bool {
	return m.saturdayOpen || m.sundayOpen
}

// SetDayWindow sets one field of a day's window. Selecting Closed closes the
// day whatever the field; any other value reopens a closed day with the other
// field blank.
func (m *Manager) SetDayWindow(day model.Day, field model.Field, value string) {
	if value == Closed {
		m.schedule.Close(day)
		m.changed()
		return
	}

	win, open := m.schedule.Window(day)
	if !open {
		win = model.TimeWindow{}
	}
	m.schedule.Open(day, win.With(field, value))
	m.changed()
}

// SetUniformWeekdayWindow edits the common weekday window and applies it to
// all five weekdays at once.
func (m *Manager) SetUniformWeekdayWindow(field model.Field, value string) error {
	if m.mode != ModeUniform {
		return ErrNotUniform
	}

	switch {
	case value == Closed:
		m.common = model.TimeWindow{StartTime: Closed}
	case m.common.StartTime == Closed:
		m.common = model.TimeWindow{}.With(field, value)
	default:
		m.common = m.common.With(field, value)
	}

	m.applyCommon()
	m.changed()
	return nil
}

// SetMode switches the weekday editing mode. Entering uniform mode overwrites
// every weekday with the common window; entering per-day mode keeps the data.
func (m *Manager) SetMode(mode Mode) {
	if mode == ModeUniform {
		if m.common.IsEmpty() {
			m.common = model.DefaultWindow
		}
		m.mode = ModeUniform
		m.applyCommon()
	} else {
		m.mode = ModePerDay
	}
	m.changed()
}

// SetWeekendAggregate opens both weekend days with the default window or closes both.
func (m *Manager) SetWeekendAggregate(open bool) {
	for _, d := range model.WeekendDays {
		if open {
			m.schedule.Open(d, model.DefaultWindow)
		} else {
			m.schedule.Close(d)
		}
	}
	m.changed()
}

// SetWeekendDay flips the open switch of Saturday or Sunday. Opening a closed
// day gives it the default window; an open day keeps its window. The other
// weekend day is left alone and the aggregate switch follows.
func (m *Manager) SetWeekendDay(day model.Day, open bool) error {
	if !day.IsWeekend() {
		return fmt.Errorf("%s: %w", day, ErrNotWeekend)
	}
	switch {
	case !open:
		m.schedule.Close(day)
	case !m.schedule.IsOpen(day):
		m.schedule.Open(day, model.DefaultWindow)
	}
	m.changed()
	return nil
}

// ToAPIPayload returns the wire shape of the current schedule.
func (m *Manager) ToAPIPayload() model.WeeklyScheduleWire {
	return model.ToWire(m.schedule)
}

// ReconcileFromServer replaces the state with a schedule fetched from the API.
// A payload with every weekday closed is treated as never configured and
// yields the default schedule.
func (m *Manager) ReconcileFromServer(wire model.WeeklyScheduleWire) {
	s := model.FromWire(wire)
	if s.AllWeekdaysClosed() {
		s = model.DefaultSchedule()
	}
	m.schedule = s

	if s.WeekdaysUniform() {
		if w, open := s.Window(model.Monday); open {
			m.common = w
		}
	}
	m.changed()
}

// Validate runs the form validator against the current state.
func (m *Manager) Validate() string {
	return Validate(m)
}

func (m *Manager) applyCommon() {
	for _, d := range model.Weekdays {
		if m.common.StartTime == Closed {
			m.schedule.Close(d)
		} else {
			m.schedule.Open(d, m.common)
		}
	}
}

// derive recomputes the flags that follow from the schedule. Diverging
// weekdays promote uniform mode to per-day; nothing demotes it.
func (m *Manager) derive() {
	m.saturdayOpen = m.schedule.IsOpen(model.Saturday)
	m.sundayOpen = m.schedule.IsOpen(model.Sunday)
	if m.mode == ModeUniform && !m.schedule.WeekdaysUniform() {
		m.mode = ModePerDay
	}
}

func (m *Manager) changed() {
	m.derive()
	if m.onChange != nil {
		m.onChange(m.ToAPIPayload())
	}
}
