package datetime

import (
	"fmt"
	"time"
)

// ComposeLocalWallClockToUTC reads hhmm as a wall-clock time on the given
// date in loc (the formatter's location when nil) and returns the UTC instant
// as "2006-01-02T15:04:05.000Z". It returns "" for unparsable input.
func (f *Formatter) ComposeLocalWallClockToUTC(date, hhmm string, loc *time.Location) string {
	if loc == nil {
		loc = f.loc
	}
	day, err := parseInstant(date, loc)
	if err != nil {
		f.logger.Debug().Err(err).Str("date", date).Msg("compose local wall clock")
		return ""
	}
	h, m, err := parseClock(hhmm)
	if err != nil {
		f.logger.Debug().Err(err).Str("time", hhmm).Msg("compose local wall clock")
		return ""
	}

	y, mo, d := calendarDate(date, day, loc)
	return isoString(time.Date(y, mo, d, h, m, 0, 0, loc))
}

// ComposeUTCFieldsDirectly sets hhmm as the UTC hour and minute of the given
// date's UTC calendar day. Unlike ComposeLocalWallClockToUTC the result does
// not depend on any location. It returns "" for unparsable input.
func (f *Formatter) ComposeUTCFieldsDirectly(date, hhmm string) string {
	day, err := parseInstant(date, f.loc)
	if err != nil {
		f.logger.Debug().Err(err).Str("date", date).Msg("compose utc fields")
		return ""
	}
	return f.ComposeUTCFieldsDirectlyAt(day, hhmm)
}

// ComposeUTCFieldsDirectlyAt is ComposeUTCFieldsDirectly for a parsed instant.
func (f *Formatter) ComposeUTCFieldsDirectlyAt(day time.Time, hhmm string) string {
	h, m, err := parseClock(hhmm)
	if err != nil {
		f.logger.Debug().Err(err).Str("time", hhmm).Msg("compose utc fields")
		return ""
	}
	y, mo, d := day.UTC().Date()
	return isoString(time.Date(y, mo, d, h, m, 0, 0, time.UTC))
}

// calendarDate returns the calendar day named by the input. A bare date keeps
// its own fields; instants are viewed in loc.
func calendarDate(raw string, parsed time.Time, loc *time.Location) (int, time.Month, int) {
	if _, err := time.Parse(time.DateOnly, raw); err == nil {
		return parsed.Date()
	}
	return parsed.In(loc).Date()
}

func parseClock(hhmm string) (int, int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}
	return t.Hour(), t.Minute(), nil
}
