package service

import (
	"context"
	"strings"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// DefaultCategories are upserted on startup.
var DefaultCategories = []model.Category{
	{Name: "Work", Color: "#FF6B6B"},
	{Name: "Personal", Color: "#4ECDC4"},
	{Name: "Study", Color: "#45B7D1"},
	{Name: "Exercise", Color: "#96CEB4"},
	{Name: "Other", Color: "#FFEEAD"},
}

// CategoryService provides helpers around categories.
type CategoryService struct {
	repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) AddCategory(ctx context.Context, name, color string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &model.ValidationError{Field: "name", Reason: "category name is required"}
	}
	return s.repo.Upsert(ctx, name, color)
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

// Names returns category names only, the lookup set offered for new tasks.
func (s *CategoryService) Names(ctx context.Context) ([]string, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names, nil
}

func (s *CategoryService) Remove(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(name))
}

func (s *CategoryService) EnsureDefaults(ctx context.Context) error {
	for _, c := range DefaultCategories {
		if err := s.repo.Upsert(ctx, c.Name, c.Color); err != nil {
			return err
		}
	}
	return nil
}
