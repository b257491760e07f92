package domain

import "time"

// TimePeriod is the requested reporting window, inclusive on both ends.
type TimePeriod struct {
	Start time.Time
	End   time.Time
	Days  int
}

func NewTimePeriod(start, end time.Time) TimePeriod {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return TimePeriod{Start: start, End: end, Days: days}
}
