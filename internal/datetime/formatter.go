// Package datetime converts between wall-clock strings, UTC ISO-8601 strings and
// display strings. Functions never fail: invalid input renders a sentinel.
package datetime

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// InvalidDate is rendered when an input cannot be parsed.
const InvalidDate = "Invalid Date"

// isoLayout matches the millisecond UTC form produced by browsers.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Mode selects what FormatDateTime renders.
type Mode string

const (
	ModeTime Mode = "time"
	ModeDate Mode = "date"
	ModeBoth Mode = "both"
)

// Formatter renders instants for one viewer. The viewer's location and the
// clock are explicit so relative labels do not depend on the host.
type Formatter struct {
	loc    *time.Location
	now    func() time.Time
	logger *zerolog.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		f.now = now
	}
}

// WithLogger sets the logger used for parse failures.
func WithLogger(logger *zerolog.Logger) Option {
	return func(f *Formatter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFormatter returns a formatter for a viewer in loc (UTC when nil).
func NewFormatter(loc *time.Location, opts ...Option) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	nop := zerolog.Nop()
	f := &Formatter{
		loc:    loc,
		now:    time.Now,
		logger: &nop,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Location returns the viewer's location.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// FormatDateTime renders an ISO instant in the viewer's location.
//
//	time: "9:05 AM"
//	date: "05-Mar 2024"
//	both: the time alone for today, the time followed by "gestern" or
//	      "vorgestern" for the two previous days, otherwise "05-Mar 2024 9:05 AM".
func (f *Formatter) FormatDateTime(iso string, mode Mode) string {
	t, err := parseInstant(iso, f.loc)
	if err != nil {
		f.logger.Debug().Err(err).Str("input", iso).Msg("format date time")
		return InvalidDate
	}
	t = t.In(f.loc)

	clock := t.Format("3:04 PM")
	date := t.Format("02-Jan 2006")
	switch mode {
	case ModeTime:
		return clock
	case ModeDate:
		return date
	}

	today := f.now().In(f.loc)
	switch {
	case sameDay(t, today):
		return clock
	case sameDay(t, today.AddDate(0, 0, -1)):
		return clock + " gestern"
	case sameDay(t, today.AddDate(0, 0, -2)):
		return clock + " vorgestern"
	}
	return date + " " + clock
}

// ConvertUnixTimestamp renders epoch seconds relative to now: "today 14:05"
// within a day, "yesterday 14:05" within two, else "Mar 5, 2024, 02:05 PM".
func (f *Formatter) ConvertUnixTimestamp(epochSeconds int64) string {
	t := time.Unix(epochSeconds, 0).In(f.loc)
	age := f.now().Sub(t)
	switch {
	case age < 24*time.Hour:
		return "today " + t.Format("15:04")
	case age < 48*time.Hour:
		return "yesterday " + t.Format("15:04")
	}
	return t.Format("Jan 2, 2006, 03:04 PM")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// parseInstant accepts RFC 3339 instants, zone-less date-times (read in loc)
// and bare dates (read as UTC midnight).
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty input")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05.000", "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func isoString(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
