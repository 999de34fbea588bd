package report

import (
	"errors"
	"time"
)

// Range selects the trailing window a report covers.
type Range string

const (
	Range7Days  Range = "7days"
	Range30Days Range = "30days"
	Range90Days Range = "90days"
	RangeAll    Range = "all"
)

var ErrInvalidRange = errors.New("invalid report range")

// Window resolves a range selector to an inclusive [start, end] pair ending
// at now. The empty selector defaults to 30 days; "all" starts at the epoch.
func Window(r Range, now time.Time) (time.Time, time.Time, error) {
	switch r {
	case Range7Days:
		return now.AddDate(0, 0, -7), now, nil
	case Range30Days, "":
		return now.AddDate(0, 0, -30), now, nil
	case Range90Days:
		return now.AddDate(0, 0, -90), now, nil
	case RangeAll:
		return time.Unix(0, 0).UTC(), now, nil
	}
	return time.Time{}, time.Time{}, ErrInvalidRange
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
