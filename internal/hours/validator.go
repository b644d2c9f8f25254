package hours

import (
	"fmt"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/model"
)

// State is the read side of a business-hours form.
type State interface {
	Mode() Mode
	CommonWeekdayTime() model.TimeWindow
	Schedule() model.WeeklySchedule
	SaturdayOpen() bool
	SundayOpen() bool
}

// Validate returns the message of the first violated rule, or "" when the
// form can be submitted. Weekdays are checked first, then Saturday and Sunday.
func Validate(s State) string {
	if s.Mode() == ModeUniform {
		if msg := validateUniform(s.CommonWeekdayTime()); msg != "" {
			return msg
		}
	} else {
		sched := s.Schedule()
		for _, d := range model.Weekdays {
			win, open := sched.Window(d)
			if !open {
				continue
			}
			if msg := validateWindow(win, d.Title()); msg != "" {
				return msg
			}
		}
	}

	sched := s.Schedule()
	weekend := []struct {
		day  model.Day
		open bool
	}{
		{model.Saturday, s.SaturdayOpen()},
		{model.Sunday, s.SundayOpen()},
	}
	for _, w := range weekend {
		if !w.open {
			continue
		}
		win, _ := sched.Window(w.day)
		if msg := validateWindow(win, w.day.Title()); msg != "" {
			return msg
		}
	}
	return ""
}

func validateUniform(common model.TimeWindow) string {
	if common.StartTime == "" {
		return "Please select a start time for weekdays"
	}
	if common.StartTime == Closed {
		return ""
	}
	return validateWindow(common, "weekdays")
}

func validateWindow(w model.TimeWindow, subject string) string {
	if w.StartTime == "" {
		return fmt.Sprintf("Please select a start time for %s", subject)
	}
	if w.EndTime == "" {
		return fmt.Sprintf("Please select an end time for %s", subject)
	}
	if !w.IsOrdered() {
		return fmt.Sprintf("End time must be after start time for %s", subject)
	}
	return ""
}
