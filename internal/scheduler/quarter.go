package scheduler

import "time"

const quarter = 15 * time.Minute

// QuarterHour fires on every quarter of the wall clock (:00, :15, :30, :45).
// It satisfies gron.Schedule.
type QuarterHour struct{}

func (QuarterHour) Next(t time.Time) time.Time {
	return t.Truncate(quarter).Add(quarter)
}

// nextQuarter is the upcoming quarter after now's minute, never now itself.
func nextQuarter(now time.Time) time.Time {
	minute := now.Truncate(time.Minute)
	return minute.Add(time.Duration(15-minute.Minute()%15) * time.Minute)
}
