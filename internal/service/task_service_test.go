package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/model"
)

func TestTaskService_AddTaskDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.AddTask(ctx, TaskInput{Title: "  Buy milk ", Date: "2025-06-01", Time: "09:05:00"})
	require.NoError(t, err)
	assert.NotZero(t, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "09:05", task.Time)
	assert.Equal(t, model.PriorityLow, task.Priority)
	assert.Equal(t, model.StatusPending, task.Status)
	assert.False(t, task.IsRecurring)
	assert.Empty(t, task.SeriesID)

	tasks, err := env.tasks.GetTasks(ctx, "2025-06-01")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestTaskService_AddTaskValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := map[string]TaskInput{
		"empty title":    {Title: "   ", Date: "2025-06-01"},
		"bad date":       {Title: "x", Date: "06/01/2025"},
		"bad time":       {Title: "x", Date: "2025-06-01", Time: "25:99"},
		"bad priority":   {Title: "x", Date: "2025-06-01", Priority: "urgent"},
		"bad recurrence": {Title: "x", Date: "2025-06-01", IsRecurring: true, RecurringType: "hourly"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.tasks.AddTask(ctx, input)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}

	all, err := env.tasks.GetAllTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTaskService_AddRecurringMaterializesSeries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.AddTask(ctx, TaskInput{
		Title:         "Pay rent",
		Date:          "2025-01-01",
		Priority:      "High",
		IsRecurring:   true,
		RecurringType: "Monthly",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RecurMonthly, task.RecurringType)
	assert.NotEmpty(t, task.SeriesID)

	n, err := env.tasks.SeriesSize(ctx, task.SeriesID)
	require.NoError(t, err)
	assert.Equal(t, int64(110), n)

	for _, date := range []string{"2025-01-31", "2025-03-02"} {
		tasks, err := env.tasks.GetTasks(ctx, date)
		require.NoError(t, err)
		require.Len(t, tasks, 1, date)
		assert.Equal(t, "Pay rent", tasks[0].Title)
		assert.Equal(t, model.PriorityHigh, tasks[0].Priority)
		assert.Equal(t, task.SeriesID, tasks[0].SeriesID)
	}

	feb, err := env.tasks.GetTasks(ctx, "2025-02-01")
	require.NoError(t, err)
	assert.Empty(t, feb)
}

func TestTaskService_RecurringDefaultsToDaily(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.AddTask(ctx, TaskInput{Title: "Meditate", Date: "2025-01-01", IsRecurring: true})
	require.NoError(t, err)
	assert.Equal(t, model.RecurDaily, task.RecurringType)

	n, err := env.tasks.SeriesSize(ctx, task.SeriesID)
	require.NoError(t, err)
	assert.Equal(t, int64(3288), n)
}

func TestTaskService_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.AddTask(ctx, TaskInput{Title: "Read", Date: "2025-06-01"})
	require.NoError(t, err)

	require.NoError(t, env.tasks.UpdateTaskStatus(ctx, task.ID, "Completed"))
	got, err := env.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, got.Status)

	require.NoError(t, env.tasks.UpdateTaskStatus(ctx, task.ID, model.StatusPending))
	got, err = env.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.Status)

	assert.ErrorIs(t, env.tasks.UpdateTaskStatus(ctx, task.ID, "archived"), model.ErrValidation)
	assert.ErrorIs(t, env.tasks.UpdateTaskStatus(ctx, 4242, model.StatusCompleted), model.ErrNotFound)
}

func TestTaskService_UpdateTaskKeepsDateAndSeries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.AddTask(ctx, TaskInput{Title: "Standup", Date: "2025-01-01", IsRecurring: true, RecurringType: "weekly"})
	require.NoError(t, err)

	err = env.tasks.UpdateTask(ctx, task.ID, TaskEdit{Title: "Standup (remote)", Time: "10:00", Priority: "medium", Category: "Work"})
	require.NoError(t, err)

	got, err := env.tasks.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup (remote)", got.Title)
	assert.Equal(t, "10:00", got.Time)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	assert.Equal(t, "2025-01-01", got.Date)
	assert.Equal(t, task.SeriesID, got.SeriesID)

	next, err := env.tasks.GetTasks(ctx, "2025-01-08")
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, "Standup", next[0].Title)

	assert.ErrorIs(t, env.tasks.UpdateTask(ctx, task.ID, TaskEdit{Title: ""}), model.ErrValidation)
	assert.ErrorIs(t, env.tasks.UpdateTask(ctx, 9999, TaskEdit{Title: "x"}), model.ErrNotFound)
}

func TestTaskService_DeleteSingleOccurrence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.AddTask(ctx, TaskInput{Title: "Yoga", Date: "2025-01-01", IsRecurring: true, RecurringType: "yearly"})
	require.NoError(t, err)

	occ, err := env.tasks.GetTasks(ctx, "2027-01-01")
	require.NoError(t, err)
	require.Len(t, occ, 1)

	n, err := env.tasks.DeleteTask(ctx, occ[0].ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	size, err := env.tasks.SeriesSize(ctx, task.SeriesID)
	require.NoError(t, err)
	assert.Equal(t, int64(9), size)
}

func TestTaskService_DeleteFutureOccurrences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.AddTask(ctx, TaskInput{Title: "Yoga", Date: "2025-01-01", IsRecurring: true, RecurringType: "yearly"})
	require.NoError(t, err)
	other, err := env.tasks.AddTask(ctx, TaskInput{Title: "Yoga", Date: "2025-01-01", IsRecurring: true, RecurringType: "yearly"})
	require.NoError(t, err)

	occ, err := env.tasks.GetTasks(ctx, "2028-12-31")
	require.NoError(t, err)
	require.Len(t, occ, 2)

	n, err := env.tasks.DeleteTask(ctx, occ[0].ID, true)
	require.NoError(t, err)
	// 2028-12-31 through 2033-12-30.
	assert.Equal(t, int64(6), n)

	size, err := env.tasks.SeriesSize(ctx, task.SeriesID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), size)

	size, err = env.tasks.SeriesSize(ctx, other.SeriesID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)
}

func TestTaskService_DeleteFutureOnPlainTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	task, err := env.tasks.AddTask(ctx, TaskInput{Title: "One-off", Date: "2025-01-01"})
	require.NoError(t, err)

	n, err := env.tasks.DeleteTask(ctx, task.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = env.tasks.DeleteTask(ctx, task.ID, false)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTaskService_PendingToday(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	done, err := env.tasks.AddTask(ctx, TaskInput{Title: "Done", Date: "2025-01-01"})
	require.NoError(t, err)
	_, err = env.tasks.AddTask(ctx, TaskInput{Title: "Open", Date: "2025-01-01"})
	require.NoError(t, err)
	_, err = env.tasks.AddTask(ctx, TaskInput{Title: "Tomorrow", Date: "2025-01-02"})
	require.NoError(t, err)
	require.NoError(t, env.tasks.UpdateTaskStatus(ctx, done.ID, model.StatusCompleted))

	pending, err := env.tasks.PendingToday(ctx, fixedNow)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Open", pending[0].Title)
}

func TestTaskService_SearchTasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tasks.AddTask(ctx, TaskInput{Title: "Dentist", Date: "2025-02-01", Description: "Checkup at noon"})
	require.NoError(t, err)
	_, err = env.tasks.AddTask(ctx, TaskInput{Title: "Groceries", Date: "2025-01-15"})
	require.NoError(t, err)

	found, err := env.tasks.SearchTasks(ctx, "checkup")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Dentist", found[0].Title)

	found, err = env.tasks.SearchTasks(ctx, "")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Groceries", found[0].Title)
}
