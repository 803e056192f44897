package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	for _, bad := range []string{"", "2023-02-29", "2024/01/01", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrValidation, bad)
	}
}

func TestNormalizeTime(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"09:05":    "09:05",
		"09:05:59": "09:05",
		" 23:00 ":  "23:00",
	}
	for in, want := range cases {
		got, err := NormalizeTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := NormalizeTime("noon")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseEnums(t *testing.T) {
	p, err := ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityLow, p)
	p, err = ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	s, err := ParseStatus("Completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	rt, err := ParseRecurringType("Weekly")
	require.NoError(t, err)
	assert.Equal(t, RecurWeekly, rt)

	_, err = ParseRecurringType("fortnightly")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHistoryRecord_IDs(t *testing.T) {
	rec := HistoryRecord{TaskIDs: "3, 10,x,42"}
	assert.Equal(t, []uint{3, 10, 42}, rec.IDs())
	assert.Nil(t, HistoryRecord{}.IDs())
	assert.Equal(t, "3,10,42", JoinIDs([]uint{3, 10, 42}))
	assert.Equal(t, "", JoinIDs(nil))
}

func TestHistoryRecord_Summary(t *testing.T) {
	rec := HistoryRecord{CompletionPercentage: 200.0 / 3, CompletedTasks: 2, TotalTasks: 3}
	assert.Equal(t, "Completion: 66.7% (2 of 3 tasks)", rec.Summary())
}

func TestErrorClassification(t *testing.T) {
	notFound := fmt.Errorf("delete: %w", &NotFoundError{Entity: "task", ID: uint(5)})
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.EqualError(t, notFound, "delete: task 5 not found")

	storage := Storage("list tasks", errors.New("disk I/O error"))
	assert.ErrorIs(t, storage, ErrStorage)
	assert.NotErrorIs(t, storage, ErrNotFound)

	assert.Same(t, notFound, Storage("op", notFound))
	assert.Nil(t, Storage("op", nil))

	delivery := &NotificationDeliveryError{Sink: "telegram", Err: errors.New("403")}
	assert.ErrorIs(t, delivery, ErrNotification)
}
