// Package recurrence computes the next occurrence of a repeating
// reminder. Pure date arithmetic — no store access, safe to call from
// concurrent workflows.
package recurrence

import (
	"fmt"
	"time"
)

// Frequency is how often a rule repeats.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// Rule is a declarative repeat schedule. DayOfWeek (0=Sunday..6) is
// required for weekly rules; DayOfMonth (1..31) for monthly rules.
// Rules are validated once at creation and never mutated.
type Rule struct {
	Frequency  Frequency `json:"frequency"`
	DayOfWeek  *int      `json:"day_of_week,omitempty"`
	DayOfMonth *int      `json:"day_of_month,omitempty"`
}

// InvalidRuleError reports a malformed rule at creation time.
type InvalidRuleError struct {
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return "recurrence: invalid rule: " + e.Reason
}

// Validate checks the rule's shape. Called once before a repeating
// reminder is persisted; Next assumes a valid rule.
func (r Rule) Validate() error {
	switch r.Frequency {
	case Daily:
		return nil
	case Weekly:
		if r.DayOfWeek == nil {
			return &InvalidRuleError{Reason: "weekly rule requires day_of_week"}
		}
		if *r.DayOfWeek < 0 || *r.DayOfWeek > 6 {
			return &InvalidRuleError{Reason: fmt.Sprintf("day_of_week %d out of range 0-6", *r.DayOfWeek)}
		}
		return nil
	case Monthly:
		if r.DayOfMonth == nil {
			return &InvalidRuleError{Reason: "monthly rule requires day_of_month"}
		}
		if *r.DayOfMonth < 1 || *r.DayOfMonth > 31 {
			return &InvalidRuleError{Reason: fmt.Sprintf("day_of_month %d out of range 1-31", *r.DayOfMonth)}
		}
		return nil
	default:
		return &InvalidRuleError{Reason: fmt.Sprintf("unknown frequency %q", r.Frequency)}
	}
}

// Next computes the occurrence after current.
//
// Daily advances one day and weekly a flat seven days — the stored
// day_of_week is informational, not a snap-to-weekday. Monthly advances
// to the rule's day_of_month in the next calendar month, rolling the
// year at December and clamping to the month's last day when it is
// shorter (Jan 31 + monthly -> Feb 28/29).
func Next(current time.Time, r Rule) time.Time {
	switch r.Frequency {
	case Weekly:
		return current.AddDate(0, 0, 7)
	case Monthly:
		year, month, _ := current.Date()
		month++
		if month > time.December {
			month = time.January
			year++
		}
		day := *r.DayOfMonth
		if last := daysIn(year, month); day > last {
			day = last
		}
		h, m, s := current.Clock()
		return time.Date(year, month, day, h, m, s, current.Nanosecond(), current.Location())
	default:
		return current.AddDate(0, 0, 1)
	}
}

// daysIn returns the number of days in a month; day 0 of the following
// month normalizes to the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
