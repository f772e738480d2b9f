package providers

import (
	"fmt"
	"resultsd/internal/structures"
	"time"

	"github.com/jonboulle/clockwork"
)

func NewClockProvider() clockwork.Clock {
	return clockwork.NewRealClock()
}

// NewLocationProvider resolves the calendar "today" and month windows are computed in.
func NewLocationProvider(conf *structures.Config) (*time.Location, error) {
	if conf.Results.Timezone == "" || conf.Results.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(conf.Results.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown results timezone %q: %w", conf.Results.Timezone, err)
	}
	return loc, nil
}
