package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHours(t *testing.T) {
	tests := []struct {
		start, end string
		want       float64
	}{
		{"09:00", "11:30", 2.5},
		{"10:00:00", "11:00:00", 1},
		{"1:00 PM", "3:15 PM", 2.25},
		{"18:00", "17:00", 0},
		{"not a time", "17:00", 0},
		{"17:00", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			assert.InDelta(t, tt.want, Hours(tt.start, tt.end), 1e-9)
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Run("one coach two practices", func(t *testing.T) {
		s := Summarize([]Entry{
			{EventType: "Practice", Hours: 2.5, Owner: "c1"},
			{EventType: "Practice", Hours: 1.0, Owner: "c1"},
		})
		assert.Equal(t, 3.5, s.Total)
		assert.Equal(t, "Practice: 3.5h", s.Breakdown)
		assert.Equal(t, 1, s.ActiveCoaches)
		assert.Equal(t, 3.5, s.Average)
	})

	t.Run("types keep first appearance order", func(t *testing.T) {
		s := Summarize([]Entry{
			{EventType: "Tournament", Hours: 4, Owner: "c1"},
			{EventType: "Practice", Hours: 1.25, Owner: "c2"},
			{EventType: "", Hours: 0.5, Owner: "c2"},
			{EventType: "Tournament", Hours: 2, Owner: "c2"},
		})
		assert.Equal(t, "Tournament: 6.0h • Practice: 1.3h • Other: 0.5h", s.Breakdown)
		assert.Equal(t, 7.8, s.Total)
		assert.Equal(t, 2, s.ActiveCoaches)
		assert.Equal(t, 3.9, s.Average)
	})

	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil)
		assert.Zero(t, s.Total)
		assert.Empty(t, s.Breakdown)
		assert.Zero(t, s.ActiveCoaches)
		assert.Zero(t, s.Average)
	})
}
