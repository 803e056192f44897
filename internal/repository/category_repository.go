package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-tracker/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	store *Store
}

func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// Upsert creates the category or updates its color.
func (r *CategoryRepository) Upsert(ctx context.Context, name, color string) error {
	return r.store.write(ctx, "upsert category", func(db *gorm.DB) error {
		category := model.Category{Name: name, Color: color}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"color"}),
		}).Create(&category).Error
		if err != nil {
			return fmt.Errorf("upsert category: %w", err)
		}
		return nil
	})
}

// List returns categories in the order they were first added.
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.store.read(ctx, "list categories", func(db *gorm.DB) error {
		return db.Order("id ASC").Find(&categories).Error
	})
	return categories, err
}

func (r *CategoryRepository) Delete(ctx context.Context, name string) error {
	var affected int64
	err := r.store.write(ctx, "delete category", func(db *gorm.DB) error {
		res := db.Where("name = ?", name).Delete(&model.Category{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return &model.NotFoundError{Entity: "category", ID: name}
	}
	return nil
}
