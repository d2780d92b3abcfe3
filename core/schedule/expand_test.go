package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
)

type testEvent struct {
	name string
	rule Rule
}

func (e testEvent) Schedule() Rule { return e.rule }

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func weekly(start time.Time, days ...string) testEvent {
	return testEvent{name: "practice", rule: Rule{StartDate: start, IsRecurring: true, Pattern: Weekly, Days: days}}
}

func TestExpand_NonRecurring(t *testing.T) {
	ev := testEvent{rule: Rule{StartDate: at(2024, 6, 12, 18, 0)}}

	tests := []struct {
		name   string
		window Window
		want   int
	}{
		{"open window", Window{}, 1},
		{"inside", Window{Start: at(2024, 6, 1, 0, 0), End: at(2024, 6, 30, 0, 0)}, 1},
		{"on start bound", Window{Start: at(2024, 6, 12, 18, 0)}, 1},
		{"on end bound", Window{End: at(2024, 6, 12, 18, 0)}, 1},
		{"before window", Window{Start: at(2024, 6, 13, 0, 0)}, 0},
		{"after window", Window{End: at(2024, 6, 12, 17, 59)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(ev, tt.window)
			require.Len(t, got, tt.want)
			if tt.want == 1 {
				assert.Equal(t, ev.rule.StartDate, got[0].Start)
				assert.Equal(t, ev, got[0].Event)
			}
		})
	}
}

func TestExpand_ZeroStartDateIsSkipped(t *testing.T) {
	assert.Empty(t, Expand(testEvent{rule: Rule{IsRecurring: true, Pattern: Weekly, Days: []string{"Mon"}}}, Window{}))
	assert.Empty(t, Expand(testEvent{}, Window{}))
}

func TestExpand_WeeklyEightWeeks(t *testing.T) {
	start := at(2024, 6, 3, 10, 30) // Monday
	ev := weekly(start, "Mon")

	got := Expand(ev, Window{Start: StartOfDay(start), End: EndOfDay(start.AddDate(0, 0, 7*8-1))})

	require.Len(t, got, 8)
	for i, occ := range got {
		assert.Equal(t, time.Monday, occ.Start.Weekday())
		assert.Equal(t, start.AddDate(0, 0, 7*i), occ.Start)
		assert.Equal(t, 10, occ.Start.Hour())
		assert.Equal(t, 30, occ.Start.Minute())
	}
}

func TestExpand_EveryTwoWeeksParity(t *testing.T) {
	start := at(2024, 6, 3, 17, 0) // Monday, week 0
	ev := testEvent{rule: Rule{StartDate: start, IsRecurring: true, Pattern: EveryTwoWeeks, Days: []string{"Mon"}}}

	got := Expand(ev, Window{End: start.AddDate(0, 0, 7*10)})

	require.Len(t, got, 6)
	for i, occ := range got {
		weeks := civilDays(start, occ.Start) / 7
		assert.Equal(t, 2*i, weeks)
		assert.Zero(t, weeks%2)
	}
}

func TestExpand_AnchorNotOnRepeatDay(t *testing.T) {
	wednesday := at(2024, 6, 5, 9, 0)
	ev := testEvent{rule: Rule{StartDate: wednesday, IsRecurring: true, Pattern: EveryTwoWeeks, Days: []string{"Mon"}}}

	got := Expand(ev, Window{End: at(2024, 7, 10, 0, 0)})

	require.Len(t, got, 3)
	assert.Equal(t, at(2024, 6, 10, 9, 0), got[0].Start)
	assert.Equal(t, at(2024, 6, 24, 9, 0), got[1].Start)
	assert.Equal(t, at(2024, 7, 8, 9, 0), got[2].Start)

	// Moving the anchor to the Monday before flips the matching weeks.
	shifted := ev
	shifted.rule.StartDate = at(2024, 6, 3, 9, 0)
	got = Expand(shifted, Window{Start: at(2024, 6, 5, 0, 0), End: at(2024, 7, 10, 0, 0)})
	require.Len(t, got, 2)
	assert.Equal(t, at(2024, 6, 17, 9, 0), got[0].Start)
	assert.Equal(t, at(2024, 7, 1, 9, 0), got[1].Start)
}

func TestExpand_CountCapIsAbsolute(t *testing.T) {
	start := at(2024, 6, 3, 18, 0)
	ev := weekly(start, "Mon")
	ev.rule.EndCount = intPtr(3)

	all := Expand(ev, Window{})
	require.Len(t, all, 3)
	assert.Equal(t, at(2024, 6, 17, 18, 0), all[2].Start)

	later := Expand(ev, Window{Start: at(2024, 6, 18, 0, 0), End: at(2024, 7, 31, 0, 0)})
	assert.Empty(t, later)

	partial := Expand(ev, Window{Start: at(2024, 6, 10, 0, 0), End: at(2024, 7, 31, 0, 0)})
	require.Len(t, partial, 2)
	assert.Equal(t, at(2024, 6, 10, 18, 0), partial[0].Start)
}

func TestExpand_ZeroCountYieldsNothing(t *testing.T) {
	ev := weekly(at(2024, 6, 3, 18, 0), "Mon", "Wed")
	ev.rule.EndCount = intPtr(0)
	assert.Empty(t, Expand(ev, Window{}))
}

func TestExpand_EndRecurrenceDateIsInclusive(t *testing.T) {
	ev := weekly(at(2024, 6, 3, 18, 0), "Mon")
	last := at(2024, 6, 17, 0, 0)
	ev.rule.EndDate = &last

	got := Expand(ev, Window{})
	require.Len(t, got, 3)
	assert.Equal(t, at(2024, 6, 17, 18, 0), got[2].Start)
}

func TestExpand_WindowStartAfterLoopEnd(t *testing.T) {
	ev := weekly(at(2024, 6, 3, 18, 0), "Mon")
	last := at(2024, 6, 30, 0, 0)
	ev.rule.EndDate = &last

	assert.Empty(t, Expand(ev, Window{Start: at(2024, 8, 1, 0, 0), End: at(2024, 8, 31, 0, 0)}))
}

func TestExpand_MissingDaysOrPattern(t *testing.T) {
	start := at(2024, 6, 3, 18, 0)
	assert.Empty(t, Expand(weekly(start), Window{}))
	assert.Empty(t, Expand(weekly(start, "Funday"), Window{}))

	ev := weekly(start, "Mon")
	ev.rule.Pattern = "Monthly"
	assert.Empty(t, Expand(ev, Window{}))
}

func TestExpand_TerminatesAtHardCap(t *testing.T) {
	start := at(2024, 1, 1, 7, 0)
	ev := weekly(start, "Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat")

	got := Expand(ev, Window{})

	require.NotEmpty(t, got)
	limit := start.AddDate(MaxRecurrenceYears, 0, 0)
	assert.False(t, got[len(got)-1].Start.After(limit))
	assert.Equal(t, civilDays(start, limit)+1, len(got))
}

func TestExpand_KeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	// Spans the March DST change.
	start := time.Date(2024, 3, 4, 18, 30, 0, 0, loc)
	ev := weekly(start, "Mon")

	got := Expand(ev, Window{End: time.Date(2024, 3, 18, 23, 0, 0, 0, loc)})

	require.Len(t, got, 3)
	for _, occ := range got {
		assert.Equal(t, loc, occ.Start.Location())
		assert.Equal(t, 18, occ.Start.Hour())
		assert.Equal(t, 30, occ.Start.Minute())
	}
}

func TestExpand_MatchesRRuleWeekly(t *testing.T) {
	start := at(2024, 2, 5, 16, 0) // Monday
	w := Window{Start: at(2024, 3, 1, 0, 0), End: EndOfDay(at(2024, 8, 31, 0, 0))}

	tests := []struct {
		name     string
		pattern  Pattern
		interval int
	}{
		{"weekly", Weekly, 1},
		{"every two weeks", EveryTwoWeeks, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := testEvent{rule: Rule{StartDate: start, IsRecurring: true, Pattern: tt.pattern, Days: []string{"Mon", "Thu"}}}

			r, err := rrule.NewRRule(rrule.ROption{
				Freq:      rrule.WEEKLY,
				Interval:  tt.interval,
				Wkst:      rrule.MO,
				Byweekday: []rrule.Weekday{rrule.MO, rrule.TH},
				Dtstart:   start,
			})
			require.NoError(t, err)
			want := r.Between(w.Start, w.End, true)

			got := Expand(ev, w)
			require.Len(t, got, len(want))
			for i := range want {
				assert.True(t, want[i].Equal(got[i].Start), "occurrence %d: want %s got %s", i, want[i], got[i].Start)
			}
		})
	}
}

func TestExpandAll_SortsAcrossEvents(t *testing.T) {
	events := []testEvent{
		weekly(at(2024, 6, 4, 19, 0), "Tue"),
		weekly(at(2024, 6, 3, 8, 0), "Mon", "Tue"),
		{name: "tournament", rule: Rule{StartDate: at(2024, 6, 4, 12, 0)}},
	}

	got := ExpandAll(events, Window{Start: at(2024, 6, 3, 0, 0), End: EndOfDay(at(2024, 6, 4, 0, 0))})

	require.Len(t, got, 4)
	assert.Equal(t, at(2024, 6, 3, 8, 0), got[0].Start)
	assert.Equal(t, at(2024, 6, 4, 8, 0), got[1].Start)
	assert.Equal(t, "tournament", got[2].Event.name)
	assert.Equal(t, at(2024, 6, 4, 19, 0), got[3].Start)
}

func TestMonthOf_SplitsToday(t *testing.T) {
	ref := at(2024, 6, 12, 9, 0)
	events := []testEvent{
		{name: "single", rule: Rule{StartDate: at(2024, 6, 12, 18, 0)}},
		weekly(at(2024, 5, 1, 17, 0), "Wed"),
		{name: "next month", rule: Rule{StartDate: at(2024, 7, 1, 18, 0)}},
	}

	split := MonthOf(events, ref)

	require.Len(t, split.Monthly, 5) // Jun 5, 12, 12, 19, 26
	require.Len(t, split.Today, 2)
	assert.Equal(t, at(2024, 6, 12, 17, 0), split.Today[0].Start)
	assert.Equal(t, "single", split.Today[1].Event.name)
	for _, occ := range split.Monthly {
		assert.Equal(t, time.June, occ.Start.Month())
	}
}
