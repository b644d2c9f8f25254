package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	d, err := ParseDay(" Saturday ")
	require.NoError(t, err)
	assert.Equal(t, Saturday, d)
	assert.Equal(t, "saturday", d.String())
	assert.Equal(t, "Saturday", d.Title())
	assert.True(t, d.IsWeekend())

	_, err = ParseDay("funday")
	assert.Error(t, err)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("end_time")
	require.NoError(t, err)
	assert.Equal(t, EndTime, f)

	_, err = ParseField("middle")
	assert.Error(t, err)
}

func TestDefaultSchedule(t *testing.T) {
	s := DefaultSchedule()
	for _, d := range Weekdays {
		w, open := s.Window(d)
		assert.True(t, open, d.String())
		assert.Equal(t, DefaultWindow, w)
	}
	assert.False(t, s.IsOpen(Saturday))
	assert.False(t, s.IsOpen(Sunday))
	assert.True(t, s.WeekdaysUniform())
}

func TestWeeklySchedule_CloseDropsWindow(t *testing.T) {
	s := DefaultSchedule()
	s.Close(Monday)
	assert.Equal(t, DayHours{}, s.Hours(Monday))
	assert.False(t, s.WeekdaysUniform())
}

func TestWireJSONShape(t *testing.T) {
	s := DefaultSchedule()
	s.Open(Saturday, TimeWindow{StartTime: "10:00", EndTime: "14:00"})

	data, err := json.Marshal(ToWire(s))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `[{"start_time":"09:00","end_time":"17:00"}]`, string(raw["monday"]))
	assert.JSONEq(t, `[{"start_time":"10:00","end_time":"14:00"}]`, string(raw["saturday"]))
	assert.Equal(t, "null", string(raw["sunday"]))
}

func TestFromWire_ClosedForms(t *testing.T) {
	payload := `{
		"monday": null,
		"tuesday": [],
		"wednesday": [{"start_time": null, "end_time": null}],
		"thursday": [{"start_time": "", "end_time": ""}],
		"friday": [{"start_time": "08:00", "end_time": "12:00"}],
		"saturday": [{"start_time": "10:00", "end_time": ""}]
	}`

	var w WeeklyScheduleWire
	require.NoError(t, json.Unmarshal([]byte(payload), &w))
	s := FromWire(w)

	for _, d := range []Day{Monday, Tuesday, Wednesday, Thursday, Sunday} {
		assert.False(t, s.IsOpen(d), d.String())
	}
	fri, open := s.Window(Friday)
	assert.True(t, open)
	assert.Equal(t, TimeWindow{StartTime: "08:00", EndTime: "12:00"}, fri)

	sat, open := s.Window(Saturday)
	assert.True(t, open, "half-filled window stays open")
	assert.False(t, sat.IsComplete())
}

func TestWireRoundTrip(t *testing.T) {
	var s WeeklySchedule
	s.Open(Monday, TimeWindow{StartTime: "07:00", EndTime: "22:00"})
	s.Open(Thursday, TimeWindow{StartTime: "09:30", EndTime: "13:00"})
	s.Open(Sunday, DefaultWindow)

	assert.Equal(t, s, FromWire(ToWire(s)))
}

func TestTimeWindow_Ordering(t *testing.T) {
	assert.True(t, TimeWindow{StartTime: "09:00", EndTime: "17:00"}.IsOrdered())
	assert.False(t, TimeWindow{StartTime: "17:00", EndTime: "09:00"}.IsOrdered())
	assert.False(t, TimeWindow{StartTime: "09:00"}.IsOrdered())
	assert.Equal(t, "10:00", TimeWindow{}.With(StartTime, "10:00").Get(StartTime))
}
