package service

import (
	"time"

	"github.com/focusflowhq/backend/internal/domain"
)

// PeriodBounds returns the half-open [start, end) window of the day, month or
// year containing now, computed in loc. Summaries and progress use this so all
// bucketing happens in the user's timezone, never the server's.
func PeriodBounds(period string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	local := now.In(loc)

	switch period {
	case domain.PeriodDay:
		start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1), nil
	case domain.PeriodMonth:
		start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0), nil
	case domain.PeriodYear:
		start := time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, domain.ErrInvalidPeriod
	}
}

// loadLocation resolves an IANA timezone name, falling back to UTC when the
// name is empty or unknown
func loadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
