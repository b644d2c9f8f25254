package hours

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Manager)
		want  string
	}{
		{
			name:  "defaults are valid",
			setup: func(*Manager) {},
			want:  "",
		},
		{
			name: "uniform closed needs no end time",
			setup: func(m *Manager) {
				_ = m.SetUniformWeekdayWindow(model.StartTime, Closed)
			},
			want: "",
		},
		{
			name: "uniform missing start",
			setup: func(m *Manager) {
				m.common = model.TimeWindow{EndTime: "17:00"}
			},
			want: "Please select a start time for weekdays",
		},
		{
			name: "uniform missing end",
			setup: func(m *Manager) {
				_ = m.SetUniformWeekdayWindow(model.StartTime, Closed)
				_ = m.SetUniformWeekdayWindow(model.StartTime, "09:00")
			},
			want: "Please select an end time for weekdays",
		},
		{
			name: "uniform reversed",
			setup: func(m *Manager) {
				_ = m.SetUniformWeekdayWindow(model.StartTime, "18:00")
			},
			want: "End time must be after start time for weekdays",
		},
		{
			name: "per-day closed days are skipped",
			setup: func(m *Manager) {
				m.SetMode(ModePerDay)
				m.SetDayWindow(model.Monday, model.StartTime, Closed)
			},
			want: "",
		},
		{
			name: "per-day reopened day without start",
			setup: func(m *Manager) {
				m.SetMode(ModePerDay)
				m.SetDayWindow(model.Wednesday, model.StartTime, Closed)
				m.SetDayWindow(model.Wednesday, model.EndTime, "16:00")
			},
			want: "Please select a start time for Wednesday",
		},
		{
			name: "first violation wins",
			setup: func(m *Manager) {
				m.SetMode(ModePerDay)
				m.SetDayWindow(model.Thursday, model.StartTime, Closed)
				m.SetDayWindow(model.Thursday, model.StartTime, "10:00")
				m.SetDayWindow(model.Tuesday, model.StartTime, Closed)
				m.SetDayWindow(model.Tuesday, model.EndTime, "12:00")
			},
			want: "Please select a start time for Tuesday",
		},
		{
			name: "weekend closed is not checked",
			setup: func(m *Manager) {
				m.schedule.Open(model.Sunday, model.TimeWindow{StartTime: "10:00"})
				m.sundayOpen = false
			},
			want: "",
		},
		{
			name: "sunday missing end",
			setup: func(m *Manager) {
				m.SetDayWindow(model.Sunday, model.StartTime, "10:00")
			},
			want: "Please select an end time for Sunday",
		},
		{
			name: "saturday before sunday",
			setup: func(m *Manager) {
				m.SetDayWindow(model.Sunday, model.StartTime, "10:00")
				m.SetDayWindow(model.Saturday, model.EndTime, "10:00")
			},
			want: "Please select a start time for Saturday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			tt.setup(m)
			assert.Equal(t, tt.want, Validate(m))
		})
	}
}
