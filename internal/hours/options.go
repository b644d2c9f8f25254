package hours

import (
	"fmt"
	"time"
)

// Closed is the selector value that closes a day.
const Closed = "closed"

const (
	firstSlot    = 7 * 60
	lastSlot     = 22 * 60
	slotInterval = 30
)

// TimeOption is one entry of a start or end time selector.
type TimeOption struct {
	Value string `json:"value"` // "09:30" or "closed"
	Label string `json:"label"` // "9:30 AM" or "Closed"
}

var timesOfDay = buildTimesOfDay()

func buildTimesOfDay() []string {
	times := make([]string, 0, (lastSlot-firstSlot)/slotInterval+1)
	for m := firstSlot; m <= lastSlot; m += slotInterval {
		times = append(times, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return times
}

// TimesOfDay returns the selectable times from 07:00 to 22:00 in ascending order.
func TimesOfDay() []string {
	return append([]string(nil), timesOfDay...)
}

// IsTimeOfDay reports whether v is a selectable time (not the closed sentinel).
func IsTimeOfDay(v string) bool {
	for _, t := range timesOfDay {
		if t == v {
			return true
		}
	}
	return false
}

// StartTimeOptions returns the start selector: closed first, then every time.
func StartTimeOptions() []TimeOption {
	opts := make([]TimeOption, 0, len(timesOfDay)+1)
	opts = append(opts, TimeOption{Value: Closed, Label: Label(Closed)})
	for _, t := range timesOfDay {
		opts = append(opts, TimeOption{Value: t, Label: Label(t)})
	}
	return opts
}

// EndTimeOptions returns the times strictly after start, ascending.
// An empty start yields every time; a closed start yields none.
func EndTimeOptions(start string) []TimeOption {
	if start == Closed {
		return nil
	}
	opts := make([]TimeOption, 0, len(timesOfDay))
	for _, t := range timesOfDay {
		if start != "" && t <= start {
			continue
		}
		opts = append(opts, TimeOption{Value: t, Label: Label(t)})
	}
	return opts
}

// Label renders a selector value as a 12-hour clock label.
func Label(v string) string {
	if v == Closed {
		return "Closed"
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		return v
	}
	return t.Format("3:04 PM")
}
