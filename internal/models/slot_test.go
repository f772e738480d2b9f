package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"15/10/25":   "2025-10-15",
		"2025-10-15": "2025-10-15",
		" 01/02/24 ": "2024-02-01",
	}
	for in, want := range cases {
		got, err := NormalizeDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNormalizeDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "2025/10/15", "32/01/25", "yesterday"} {
		_, err := NormalizeDate(in)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, in)
	}
}

func TestNormalizeTime(t *testing.T) {
	cases := map[string]string{
		"14:30":    "02:30 PM",
		"00:15":    "12:15 AM",
		"02:30 PM": "02:30 PM",
		"3:15 pm":  "03:15 PM",
		"11:45AM":  "11:45 AM",
		" 9:00 am": "09:00 AM",
	}
	for in, want := range cases {
		got, err := NormalizeTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestNormalizeTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "25:00", "noon", "14:30:00"} {
		_, err := NormalizeTime(in)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, in)
	}
}

func TestSortReadings(t *testing.T) {
	times := []Reading{
		{Time: "01:15 PM"},
		{Time: "09:00 AM"},
		{Time: "bogus"},
		{Time: "11:30 PM"},
	}

	SortReadings(times, false)
	assert.Equal(t, []string{"bogus", "09:00 AM", "01:15 PM", "11:30 PM"}, readingTimes(times))

	SortReadings(times, true)
	assert.Equal(t, []string{"11:30 PM", "01:15 PM", "09:00 AM", "bogus"}, readingTimes(times))
}

func TestElapsed(t *testing.T) {
	now := time.Date(2025, 10, 15, 13, 15, 0, 0, time.UTC)
	times := []Reading{
		{Time: "01:00 PM", Number: "10"},
		{Time: "01:15 PM", Number: "11"},
		{Time: "01:30 PM", Number: "12"},
		{Time: "junk", Number: "13"},
	}

	got := Elapsed(times, now)
	assert.Equal(t, []string{"01:00 PM", "01:15 PM"}, readingTimes(got))
	assert.Len(t, times, 4)
}

func TestNotYetDue(t *testing.T) {
	now := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	assert.False(t, NotYetDue("09:00 AM", now))
	assert.False(t, NotYetDue("08:45 AM", now))
	assert.True(t, NotYetDue("09:15 AM", now))
	assert.True(t, NotYetDue("whenever", now))
}

func TestInMonth(t *testing.T) {
	assert.True(t, InMonth("2025-10-01", "2025-10"))
	assert.False(t, InMonth("2025-09-30", "2025-10"))
	assert.False(t, InMonth("not-a-date", "2025-10"))
}

func readingTimes(rs []Reading) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Time
	}
	return out
}
