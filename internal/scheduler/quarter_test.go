package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m, s int) time.Time {
	return time.Date(2025, 10, 15, h, m, s, 0, time.UTC)
}

func TestQuarterHour_Next(t *testing.T) {
	tests := []struct {
		now, want time.Time
	}{
		{at(9, 0, 0), at(9, 15, 0)},
		{at(9, 0, 1), at(9, 15, 0)},
		{at(9, 14, 59), at(9, 15, 0)},
		{at(9, 59, 0), at(10, 0, 0)},
		{at(23, 50, 0), time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		assert.WithinDuration(t, tt.want, QuarterHour{}.Next(tt.now), 0, tt.now.Format(time.TimeOnly))
	}
}

func TestNextQuarter(t *testing.T) {
	assert.WithinDuration(t, at(14, 45, 0), nextQuarter(at(14, 30, 5)), 0)
	assert.WithinDuration(t, at(14, 45, 0), nextQuarter(at(14, 44, 59)), 0)
	assert.WithinDuration(t, at(15, 0, 0), nextQuarter(at(14, 45, 0)), 0)
}

func TestQuarterHour_HalfHourZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)
	now := time.Date(2025, 10, 15, 9, 7, 0, 0, ist)

	assert.WithinDuration(t, time.Date(2025, 10, 15, 9, 15, 0, 0, ist), QuarterHour{}.Next(now), 0)
}
