// Package recurrence computes the next occurrence date of a repeating task
// from its recurrence pattern. The calculation is pure and deterministic; it
// never touches storage.
package recurrence

import (
	"fmt"
	"sort"
	"time"

	"github.com/phrazzld/taskdeck-api/internal/domain"
)

// NextOccurrence computes the occurrence following current according to the
// given pattern.
//
// The boolean result is false when the series has ended: the pattern has an
// end date and the computed occurrence falls on or after it (the end date is
// an exclusive bound). An unknown frequency returns a validation error; the
// frequency enum makes that unreachable for patterns that passed
// Validate, but the calculator stays defensive about stored data.
func NextOccurrence(current time.Time, pattern *domain.RecurrencePattern) (time.Time, bool, error) {
	if pattern == nil {
		return time.Time{}, false, fmt.Errorf("%w: pattern is nil", domain.ErrInvalidRecurrence)
	}

	var next time.Time

	switch pattern.Frequency {
	case domain.FrequencyDaily:
		next = current.AddDate(0, 0, pattern.Interval)

	case domain.FrequencyWeekly:
		next = current.AddDate(0, 0, pattern.Interval*7)
		if len(pattern.DaysOfWeek) > 0 {
			next = nextListedWeekday(next, pattern.DaysOfWeek)
		}

	case domain.FrequencyMonthly:
		if pattern.DayOfMonth > 0 {
			next = addMonthsOnDay(current, pattern.Interval, pattern.DayOfMonth)
		} else {
			next = current.AddDate(0, pattern.Interval, 0)
		}

	case domain.FrequencyYearly:
		next = current.AddDate(pattern.Interval, 0, 0)

	default:
		return time.Time{}, false, fmt.Errorf(
			"%w: unknown frequency %q", domain.ErrInvalidRecurrence, pattern.Frequency)
	}

	if pattern.EndDate != nil && !next.Before(*pattern.EndDate) {
		return time.Time{}, false, nil
	}

	return next, true, nil
}

// nextListedWeekday advances t to the next date whose weekday appears in
// days. Selection is relative to t's own weekday: the smallest listed
// weekday strictly greater than it wins, otherwise the smallest listed
// weekday in the following week. A listed weekday equal to t's weekday
// therefore lands a full week later, never on t itself.
func nextListedWeekday(t time.Time, days []int) time.Time {
	sorted := make([]int, len(days))
	copy(sorted, days)
	sort.Ints(sorted)

	cur := int(t.Weekday())
	target := -1
	for _, d := range sorted {
		if d > cur {
			target = d
			break
		}
	}
	if target == -1 {
		target = sorted[0] // wrap to the following week
	}

	var delta int
	if target > cur {
		delta = target - cur
	} else {
		delta = 7 - cur + target
	}

	return t.AddDate(0, 0, delta)
}

// addMonthsOnDay advances t by the given number of months and forces the
// day-of-month component. When the target month is shorter than the
// requested day, the day is clamped to the month's last day (Jan 31 with
// day 31 yields Feb 28/29, not Mar 2/3). The clock components are preserved.
func addMonthsOnDay(t time.Time, months, day int) time.Time {
	year, month, _ := t.Date()
	anchor := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	shifted := anchor.AddDate(0, months, 0)

	if last := daysInMonth(shifted.Year(), shifted.Month()); day > last {
		day = last
	}

	return time.Date(
		shifted.Year(), shifted.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
