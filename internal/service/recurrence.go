package service

import (
	"time"

	"github.com/google/uuid"

	"task-tracker/internal/model"
)

// HorizonYears bounds how far ahead a recurring series is materialized.
const HorizonYears = 9

// StepDays is the fixed distance between occurrences. Monthly and yearly
// steps are plain 30 and 365 day offsets, not calendar months or years.
func StepDays(rt model.RecurringType) int {
	switch rt {
	case model.RecurWeekly:
		return 7
	case model.RecurMonthly:
		return 30
	case model.RecurYearly:
		return 365
	default:
		return 1
	}
}

// Horizon is anchor plus HorizonYears calendar years; a Feb 29 anchor lands
// on Feb 28 when the target year is not a leap year.
func Horizon(anchor time.Time) time.Time {
	y, m, d := anchor.Date()
	h := time.Date(y+HorizonYears, m, d, 0, 0, 0, 0, anchor.Location())
	if h.Month() != m {
		h = time.Date(y+HorizonYears, m+1, 0, 0, 0, 0, 0, anchor.Location())
	}
	return h
}

// RecurrenceEngine turns a recurring definition into concrete dated rows.
type RecurrenceEngine struct {
	now func() time.Time
}

func NewRecurrenceEngine(clock func() time.Time) *RecurrenceEngine {
	if clock == nil {
		clock = time.Now
	}
	return &RecurrenceEngine{now: clock}
}

// NewSeriesID generates the identifier shared by every row of one series.
func (e *RecurrenceEngine) NewSeriesID() string {
	return uuid.NewString()
}

// Dates lists every occurrence date after anchor up to and including the
// horizon. The anchor itself is not part of the result.
func (e *RecurrenceEngine) Dates(anchor time.Time, rt model.RecurringType) []time.Time {
	step := StepDays(rt)
	horizon := Horizon(anchor)
	dates := make([]time.Time, 0, int(horizon.Sub(anchor).Hours()/24)/step)
	for current := anchor.AddDate(0, 0, step); !current.After(horizon); current = current.AddDate(0, 0, step) {
		dates = append(dates, current)
	}
	return dates
}

// Expand builds the occurrence rows for anchor, which must already carry its
// SeriesID. Every row copies the anchor's shared fields and starts pending.
func (e *RecurrenceEngine) Expand(anchor model.Task) ([]model.Task, error) {
	if !anchor.IsRecurring {
		return nil, nil
	}
	start, err := model.ParseDate(anchor.Date)
	if err != nil {
		return nil, err
	}
	now := e.now()
	dates := e.Dates(start, anchor.RecurringType)
	rows := make([]model.Task, len(dates))
	for i, d := range dates {
		rows[i] = model.Task{
			Title:          anchor.Title,
			Description:    anchor.Description,
			Date:           model.FormatDate(d),
			Time:           anchor.Time,
			Priority:       anchor.Priority,
			Category:       anchor.Category,
			IsRecurring:    true,
			RecurringType:  anchor.RecurringType,
			SeriesID:       anchor.SeriesID,
			Status:         model.StatusPending,
			CreatedAt:      now,
			UpdatedAt:      now,
			Notes:          anchor.Notes,
			AttachmentPath: anchor.AttachmentPath,
		}
	}
	return rows, nil
}
