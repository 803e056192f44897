package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker/internal/model"
)

// HistoryRepository persists per-date completion snapshots.
type HistoryRepository struct {
	store *Store
}

func NewHistoryRepository(store *Store) *HistoryRepository {
	return &HistoryRepository{store: store}
}

// Upsert writes rec, replacing any record for the same date.
func (r *HistoryRepository) Upsert(ctx context.Context, rec *model.HistoryRecord) error {
	return r.store.write(ctx, "upsert history", func(db *gorm.DB) error {
		return upsertHistory(db, rec)
	})
}

// Refresh rebuilds the record of date from the date's current tasks. The read
// and the write share one transaction under the store's write lock, so no
// task change lands between them. build returns nil when the date should have
// no record; any existing one is then deleted.
func (r *HistoryRepository) Refresh(ctx context.Context, date string, build func(tasks []model.Task) *model.HistoryRecord) (*model.HistoryRecord, error) {
	var rec *model.HistoryRecord
	err := r.store.write(ctx, "refresh history", func(db *gorm.DB) error {
		return db.Transaction(func(tx *gorm.DB) error {
			tasks, err := tasksByDate(tx, date)
			if err != nil {
				return err
			}
			rec = build(tasks)
			if rec == nil {
				return tx.Where("date = ?", date).Delete(&model.HistoryRecord{}).Error
			}
			return upsertHistory(tx, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func upsertHistory(db *gorm.DB, rec *model.HistoryRecord) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"completion_percentage", "task_ids", "total_tasks", "completed_tasks"}),
	}).Create(rec).Error
}

// FindByDate returns nil without error when the date has no record.
func (r *HistoryRepository) FindByDate(ctx context.Context, date string) (*model.HistoryRecord, error) {
	var rec model.HistoryRecord
	err := r.store.read(ctx, "find history", func(db *gorm.DB) error {
		return db.Where("date = ?", date).First(&rec).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns every record, newest date first.
func (r *HistoryRepository) List(ctx context.Context) ([]model.HistoryRecord, error) {
	var recs []model.HistoryRecord
	err := r.store.read(ctx, "list history", func(db *gorm.DB) error {
		return db.Order("date DESC").Find(&recs).Error
	})
	return recs, err
}

func (r *HistoryRepository) DeleteByDate(ctx context.Context, date string) (bool, error) {
	var affected int64
	err := r.store.write(ctx, "delete history", func(db *gorm.DB) error {
		res := db.Where("date = ?", date).Delete(&model.HistoryRecord{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}
