package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDate parses an ISO calendar date at UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not YYYY-MM-DD", s)}
	}
	return d, nil
}

// FormatDate renders the calendar date of t in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeTime accepts HH:MM or HH:MM:SS and returns HH:MM. Empty means no time.
func NormalizeTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, layout := range []string{TimeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(TimeLayout), nil
		}
	}
	return "", &ValidationError{Field: "time", Reason: fmt.Sprintf("%q is not HH:MM", s)}
}

// ParsePriority is case-insensitive; empty defaults to Low.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", s)}
}

// ParseStatus is case-insensitive.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "completed":
		return StatusCompleted, nil
	}
	return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", s)}
}

// ParseRecurringType is case-insensitive so rows written with display labels
// ("Monthly") resolve to the same step as "monthly".
func ParseRecurringType(s string) (RecurringType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return RecurNone, nil
	case "daily":
		return RecurDaily, nil
	case "weekly":
		return RecurWeekly, nil
	case "monthly":
		return RecurMonthly, nil
	case "yearly":
		return RecurYearly, nil
	}
	return "", &ValidationError{Field: "recurring_type", Reason: fmt.Sprintf("unknown recurrence %q", s)}
}
