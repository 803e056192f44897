package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker/internal/model"
)

// SettingRepository stores key/value settings.
type SettingRepository struct {
	store *Store
}

func NewSettingRepository(store *Store) *SettingRepository {
	return &SettingRepository{store: store}
}

func (r *SettingRepository) Save(ctx context.Context, key, value string) error {
	return r.store.write(ctx, "save setting", func(db *gorm.DB) error {
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&model.Setting{Key: key, Value: value}).Error
	})
}

// Get returns def when key was never saved.
func (r *SettingRepository) Get(ctx context.Context, key, def string) (string, error) {
	var setting model.Setting
	err := r.store.read(ctx, "get setting", func(db *gorm.DB) error {
		return db.Where("key = ?", key).First(&setting).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return setting.Value, nil
}
