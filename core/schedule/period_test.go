package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2024, 6, 12, 15, 45, 0, 0, time.UTC) // Wednesday
	customStart := time.Date(2024, 6, 1, 9, 15, 0, 0, time.UTC)
	customEnd := time.Date(2024, 6, 20, 8, 0, 0, 0, time.UTC)
	endOfDay := 999 * int(time.Millisecond)

	week := Window{
		Start: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 15, 23, 59, 59, endOfDay, time.UTC),
	}

	tests := []struct {
		name   string
		period Period
		start  *time.Time
		end    *time.Time
		want   Window
	}{
		{name: "this week", period: ThisWeek, want: week},
		{name: "empty period", period: "", want: week},
		{name: "unknown period", period: "last_year", want: week},
		{
			name:   "this month",
			period: ThisMonth,
			want: Window{
				Start: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 6, 30, 23, 59, 59, endOfDay, time.UTC),
			},
		},
		{
			name:   "custom end forced to end of day",
			period: Custom,
			start:  &customStart,
			end:    &customEnd,
			want: Window{
				Start: customStart,
				End:   time.Date(2024, 6, 20, 23, 59, 59, endOfDay, time.UTC),
			},
		},
		{name: "custom without end", period: Custom, start: &customStart, want: week},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePeriod(tt.period, tt.start, tt.end, now))
		})
	}
}

func TestWeekOf_SundayAndSaturday(t *testing.T) {
	sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, sunday, WeekOf(sunday).Start)

	saturdayNight := time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, sunday, WeekOf(saturdayNight).Start)

	// Week crossing a month boundary.
	w := WeekOf(time.Date(2024, 7, 2, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, 6, w.End.Day())
}

func TestMonthBounds_February(t *testing.T) {
	w := MonthBounds(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 29, w.End.Day())
	assert.Equal(t, time.February, w.End.Month())
}

func TestPeriod_Valid(t *testing.T) {
	assert.True(t, ThisWeek.Valid())
	assert.True(t, Custom.Valid())
	assert.False(t, Period("yesterday").Valid())
}
