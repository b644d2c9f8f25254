package datetime

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host zoneinfo
)

const localLayout = "2006-01-02T15:04"

// LocalToUTC reads a datetime-local value ("2006-01-02T15:04") as wall-clock
// time in the named zone and returns the UTC instant in ISO form. The zone
// offset is taken at noon UTC of that date, so DST is honored per day.
// It returns "" for unparsable input.
func (f *Formatter) LocalToUTC(local, zone string) string {
	loc, err := loadZone(zone)
	if err != nil {
		f.logger.Debug().Err(err).Str("zone", zone).Msg("local to utc")
		return ""
	}
	wall, err := parseLocal(local)
	if err != nil {
		f.logger.Debug().Err(err).Str("input", local).Msg("local to utc")
		return ""
	}

	y, m, d := wall.Date()
	_, offset := time.Date(y, m, d, 12, 0, 0, 0, time.UTC).In(loc).Zone()
	return isoString(wall.Add(-time.Duration(offset) * time.Second))
}

// UTCToLocal renders an instant as a datetime-local value in the named zone.
// It returns "" for unparsable input.
func (f *Formatter) UTCToLocal(iso, zone string) string {
	loc, err := loadZone(zone)
	if err != nil {
		f.logger.Debug().Err(err).Str("zone", zone).Msg("utc to local")
		return ""
	}
	t, err := parseInstant(iso, time.UTC)
	if err != nil {
		f.logger.Debug().Err(err).Str("input", iso).Msg("utc to local")
		return ""
	}
	return t.In(loc).Format(localLayout)
}

// FormatDate renders an instant as "05-Mar 2024 14:05" in the named zone
// (UTC when empty). Empty input renders "N/A".
func (f *Formatter) FormatDate(s, zone string) string {
	if s == "" {
		return "N/A"
	}
	t, ok := f.inZone(s, zone)
	if !ok {
		return InvalidDate
	}
	return t.Format("02-Jan 2006 15:04")
}

// FormatCampaignDate is FormatDate followed by the zone abbreviation
// ("05-Mar 2024 14:05 IST"). Empty input renders "-".
func (f *Formatter) FormatCampaignDate(s, zone string) string {
	if s == "" {
		return "-"
	}
	t, ok := f.inZone(s, zone)
	if !ok {
		return InvalidDate
	}
	abbr, _ := t.Zone()
	return t.Format("02-Jan 2006 15:04") + " " + abbr
}

func (f *Formatter) inZone(s, zone string) (time.Time, bool) {
	loc, err := loadZone(zone)
	if err != nil {
		f.logger.Debug().Err(err).Str("zone", zone).Msg("format date")
		return time.Time{}, false
	}
	t, err := parseInstant(s, loc)
	if err != nil {
		f.logger.Debug().Err(err).Str("input", s).Msg("format date")
		return time.Time{}, false
	}
	return t.In(loc), true
}

func loadZone(zone string) (*time.Location, error) {
	if zone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", zone, err)
	}
	return loc, nil
}

func parseLocal(s string) (time.Time, error) {
	for _, layout := range []string{localLayout, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime-local %q", s)
}
