package domain

import (
	"fmt"
	"time"
)

// RecurrenceFrequency is the calendar unit a recurrence pattern advances by.
type RecurrenceFrequency string

// Valid recurrence frequencies.
const (
	FrequencyDaily   RecurrenceFrequency = "daily"
	FrequencyWeekly  RecurrenceFrequency = "weekly"
	FrequencyMonthly RecurrenceFrequency = "monthly"
	FrequencyYearly  RecurrenceFrequency = "yearly"
)

// IsValid reports whether the frequency is one of the known values.
func (f RecurrenceFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}

// RecurrencePattern describes how the next due date of a repeating task is
// derived from the current one.
//
// DaysOfWeek (0=Sunday .. 6=Saturday) is honored only for weekly patterns.
// DayOfMonth (1-31, zero means unset) is honored only for monthly patterns.
// EndDate is an exclusive upper bound: an occurrence on or after it ends the
// series.
type RecurrencePattern struct {
	Frequency  RecurrenceFrequency `json:"frequency"`
	Interval   int                 `json:"interval"`
	DaysOfWeek []int               `json:"days_of_week,omitempty"`
	DayOfMonth int                 `json:"day_of_month,omitempty"`
	EndDate    *time.Time          `json:"end_date,omitempty"`
}

// Validate checks that the pattern is well formed.
func (p *RecurrencePattern) Validate() error {
	if !p.Frequency.IsValid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRecurrence, p.Frequency)
	}

	if p.Interval < 1 {
		return fmt.Errorf("%w: interval must be at least 1, got %d", ErrInvalidRecurrence, p.Interval)
	}

	for _, d := range p.DaysOfWeek {
		if d < 0 || d > 6 {
			return fmt.Errorf("%w: weekday %d out of range 0-6", ErrInvalidRecurrence, d)
		}
	}

	if p.DayOfMonth != 0 && (p.DayOfMonth < 1 || p.DayOfMonth > 31) {
		return fmt.Errorf("%w: day of month %d out of range 1-31", ErrInvalidRecurrence, p.DayOfMonth)
	}

	return nil
}

// Clone returns a deep copy of the pattern.
func (p *RecurrencePattern) Clone() RecurrencePattern {
	out := RecurrencePattern{
		Frequency:  p.Frequency,
		Interval:   p.Interval,
		DayOfMonth: p.DayOfMonth,
	}
	if len(p.DaysOfWeek) > 0 {
		out.DaysOfWeek = make([]int, len(p.DaysOfWeek))
		copy(out.DaysOfWeek, p.DaysOfWeek)
	}
	if p.EndDate != nil {
		end := *p.EndDate
		out.EndDate = &end
	}
	return out
}
