// Package recurrence expands recurring booking patterns into a finite,
// fully materialized list of concrete occurrences. It performs no I/O so the
// expansion rules can be tested exhaustively on their own.
package recurrence

import (
	"errors"
	"time"
)

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// MaxOccurrences bounds expansion against a malformed far-future end date.
const MaxOccurrences = 366

var (
	ErrInvalidFrequency = errors.New("recurrence: invalid frequency")
	ErrInvalidInterval  = errors.New("recurrence: interval must be positive")
	ErrMissingEndDate   = errors.New("recurrence: end date is required")
)

// Pattern is a transient input: it is expanded once at creation time and
// never stored or re-evaluated as an open-ended rule.
type Pattern struct {
	Frequency  Frequency
	Interval   int
	DaysOfWeek []time.Weekday // weekly only; empty means the base date's weekday
	EndDate    time.Time
}

// Occurrence is one concrete date plus the wall-clock interval, identical
// across the whole series.
type Occurrence struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}

// Expand generates every occurrence from baseDate through p.EndDate,
// inclusive, capped at MaxOccurrences. start and end are the wall-clock
// times of the first occurrence; the same times are reapplied to every
// generated date.
func Expand(p Pattern, baseDate time.Time, start, end time.Time) ([]Occurrence, error) {
	if p.Interval < 1 {
		return nil, ErrInvalidInterval
	}
	if p.EndDate.IsZero() {
		return nil, ErrMissingEndDate
	}

	base := midnightUTC(baseDate)
	until := midnightUTC(p.EndDate)

	var dates []time.Time
	var err error
	switch p.Frequency {
	case Daily:
		dates = expandDaily(base, until, p.Interval)
	case Weekly:
		dates = expandWeekly(base, until, p.Interval, p.DaysOfWeek)
	case Monthly:
		dates = expandMonthly(base, until, p.Interval)
	default:
		err = ErrInvalidFrequency
	}
	if err != nil {
		return nil, err
	}

	out := make([]Occurrence, 0, len(dates))
	for _, d := range dates {
		out = append(out, Occurrence{
			Date:  d,
			Start: onDate(d, start),
			End:   onDate(d, end),
		})
	}
	return out, nil
}

func expandDaily(base, until time.Time, interval int) []time.Time {
	var out []time.Time
	for d := base; !d.After(until) && len(out) < MaxOccurrences; d = d.AddDate(0, 0, interval) {
		out = append(out, d)
	}
	return out
}

// expandWeekly walks day by day, keeping days whose weekday is selected and
// whose week (anchored at the Monday of the base date's week) lies on the
// interval grid. With no explicit weekday subset the base date's weekday is
// used, which makes a plain weekly pattern repeat the base day.
func expandWeekly(base, until time.Time, interval int, days []time.Weekday) []time.Time {
	selected := make(map[time.Weekday]struct{}, len(days))
	for _, wd := range days {
		selected[wd] = struct{}{}
	}
	if len(selected) == 0 {
		selected[base.Weekday()] = struct{}{}
	}

	anchor := startOfWeek(base)
	var out []time.Time
	for d := base; !d.After(until) && len(out) < MaxOccurrences; d = d.AddDate(0, 0, 1) {
		if _, ok := selected[d.Weekday()]; !ok {
			continue
		}
		weeks := int(d.Sub(anchor).Hours()) / (24 * 7)
		if weeks%interval != 0 {
			continue
		}
		out = append(out, d)
	}
	return out
}

// expandMonthly repeats the base day-of-month every interval months. Months
// where that day does not exist (no Feb 30) are skipped rather than clamped.
func expandMonthly(base, until time.Time, interval int) []time.Time {
	day := base.Day()
	var out []time.Time
	for i := 0; len(out) < MaxOccurrences; i += interval {
		first := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		d := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
		if d.After(until) {
			break
		}
		if d.Month() != first.Month() {
			continue // day overflowed into the next month
		}
		out = append(out, d)
	}
	return out
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func onDate(date, clock time.Time) time.Time {
	c := clock.UTC()
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC)
}

func startOfWeek(t time.Time) time.Time {
	// ISO week: Monday first.
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
