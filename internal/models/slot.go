package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "03:04 PM"
	// MonthLayout is the "YYYY-MM" prefix shared by every date of a month.
	MonthLayout = "2006-01"
)

var (
	dateInputLayouts = []string{"02/01/06", DateLayout}
	timeInputLayouts = []string{"15:04", "3:04 PM", "3:04PM"}
)

// NormalizeDate accepts DD/MM/YY or YYYY-MM-DD and returns YYYY-MM-DD.
func NormalizeDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
}

// NormalizeTime accepts HH:mm, hh:mm A or hh:mmA (hour padding and
// meridiem case optional) and returns hh:mm A.
func NormalizeTime(raw string) (string, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return "", ErrInvalidTimeFormat
	}
	for _, layout := range timeInputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(TimeLayout), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, raw)
}

// ClockMinutes converts a canonical hh:mm A time to minutes since midnight.
func ClockMinutes(t string) (int, bool) {
	parsed, err := time.Parse(TimeLayout, strings.ToUpper(strings.TrimSpace(t)))
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}

func minutesOrLowest(t string) int {
	if m, ok := ClockMinutes(t); ok {
		return m
	}
	return -1
}

// SortReadings orders readings by time of day. Unparseable times sort first.
func SortReadings(times []Reading, descending bool) {
	slices.SortStableFunc(times, func(a, b Reading) int {
		d := minutesOrLowest(a.Time) - minutesOrLowest(b.Time)
		if descending {
			return -d
		}
		return d
	})
}

// Elapsed keeps the readings whose time of day is at or before now.
// Readings with an unparseable time are withheld.
func Elapsed(times []Reading, now time.Time) []Reading {
	limit := now.Hour()*60 + now.Minute()
	out := make([]Reading, 0, len(times))
	for _, r := range times {
		if m, ok := ClockMinutes(r.Time); ok && m <= limit {
			out = append(out, r)
		}
	}
	return out
}

// NotYetDue reports whether t is later today than now.
func NotYetDue(t string, now time.Time) bool {
	m, ok := ClockMinutes(t)
	return !ok || m > now.Hour()*60+now.Minute()
}

// InMonth reports whether a YYYY-MM-DD date falls in month (YYYY-MM).
func InMonth(date, month string) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return t.Format(MonthLayout) == month
}
