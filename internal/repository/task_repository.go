package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"task-tracker/internal/model"
)

const insertBatchSize = 200

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	store *Store
}

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

// Create inserts task and any pre-built occurrences in one transaction, so a
// recurring series is never visible half written.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task, occurrences []model.Task) error {
	return r.store.write(ctx, "create task", func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(task).Error; err != nil {
				return fmt.Errorf("create task: %w", err)
			}
			if len(occurrences) == 0 {
				return nil
			}
			if err := tx.CreateInBatches(&occurrences, insertBatchSize).Error; err != nil {
				return fmt.Errorf("create occurrences: %w", err)
			}
			return nil
		})
	})
}

// ListByDate returns the tasks of one date in insertion order.
func (r *TaskRepository) ListByDate(ctx context.Context, date string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.store.read(ctx, "list tasks", func(db *gorm.DB) error {
		var err error
		tasks, err = tasksByDate(db, date)
		return err
	})
	return tasks, err
}

func tasksByDate(db *gorm.DB, date string) ([]model.Task, error) {
	var tasks []model.Task
	err := db.Where("date = ?", date).Order("id ASC").Find(&tasks).Error
	return tasks, err
}

// ListAll returns every task ordered by date, ties by insertion order.
func (r *TaskRepository) ListAll(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.store.read(ctx, "list all tasks", func(db *gorm.DB) error {
		return db.Order("date ASC, id ASC").Find(&tasks).Error
	})
	return tasks, err
}

func (r *TaskRepository) ListByIDs(ctx context.Context, ids []uint) ([]model.Task, error) {
	var tasks []model.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	err := r.store.read(ctx, "list tasks by id", func(db *gorm.DB) error {
		return db.Where("id IN ?", ids).Find(&tasks).Error
	})
	return tasks, err
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	err := r.store.read(ctx, "find task", func(db *gorm.DB) error {
		return db.First(&task, taskID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &model.NotFoundError{Entity: "task", ID: taskID}
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CountSeries counts the rows of a series, the anchor included.
func (r *TaskRepository) CountSeries(ctx context.Context, seriesID string) (int64, error) {
	var n int64
	err := r.store.read(ctx, "count series", func(db *gorm.DB) error {
		return db.Model(&model.Task{}).Where("series_id = ?", seriesID).Count(&n).Error
	})
	return n, err
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID uint, status model.Status, now time.Time) error {
	return r.update(ctx, "update task status", taskID, map[string]any{
		"status":     status,
		"updated_at": now,
	})
}

// UpdateFields applies the editable columns. Date, status and recurrence
// columns are never part of fields.
func (r *TaskRepository) UpdateFields(ctx context.Context, taskID uint, fields map[string]any, now time.Time) error {
	fields["updated_at"] = now
	return r.update(ctx, "update task", taskID, fields)
}

func (r *TaskRepository) update(ctx context.Context, op string, taskID uint, values map[string]any) error {
	var affected int64
	err := r.store.write(ctx, op, func(db *gorm.DB) error {
		res := db.Model(&model.Task{}).Where("id = ?", taskID).Updates(values)
		affected = res.RowsAffected
		if res.Error != nil {
			return fmt.Errorf("%s: %w", op, res.Error)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return &model.NotFoundError{Entity: "task", ID: taskID}
	}
	return nil
}

// Delete removes a single task.
func (r *TaskRepository) Delete(ctx context.Context, taskID uint) (int64, error) {
	var affected int64
	err := r.store.write(ctx, "delete task", func(db *gorm.DB) error {
		res := db.Delete(&model.Task{}, taskID)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, &model.NotFoundError{Entity: "task", ID: taskID}
	}
	return affected, nil
}

// DeleteSeriesFrom removes the occurrences of task's series dated on or after
// task's date. Rows without a series id match on title instead.
func (r *TaskRepository) DeleteSeriesFrom(ctx context.Context, task model.Task) (int64, error) {
	var affected int64
	err := r.store.write(ctx, "delete series", func(db *gorm.DB) error {
		q := db.Where("is_recurring = ? AND date >= ?", true, task.Date)
		if task.SeriesID != "" {
			q = q.Where("series_id = ?", task.SeriesID)
		} else {
			q = q.Where("title = ? AND (series_id IS NULL OR series_id = '')", task.Title)
		}
		res := q.Delete(&model.Task{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

// Search matches query as a literal substring of title or description.
func (r *TaskRepository) Search(ctx context.Context, query string) ([]model.Task, error) {
	pattern := "%" + escapeLike(query) + "%"
	var tasks []model.Task
	err := r.store.read(ctx, "search tasks", func(db *gorm.DB) error {
		return db.Where(`title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'`, pattern, pattern).
			Order("date ASC, id ASC").
			Find(&tasks).Error
	})
	return tasks, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
