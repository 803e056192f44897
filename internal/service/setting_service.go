package service

import (
	"context"
	"strconv"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
)

// SettingService reads and writes persisted settings.
type SettingService struct {
	repo *repository.SettingRepository
}

func NewSettingService(repo *repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

func (s *SettingService) Save(ctx context.Context, key, value string) error {
	if key == "" {
		return &model.ValidationError{Field: "key", Reason: "setting key is required"}
	}
	return s.repo.Save(ctx, key, value)
}

func (s *SettingService) Get(ctx context.Context, key, def string) (string, error) {
	return s.repo.Get(ctx, key, def)
}

// NotificationsEnabled reads the toggle on every call; anything other than
// "true" disables reminders.
func (s *SettingService) NotificationsEnabled(ctx context.Context) (bool, error) {
	v, err := s.repo.Get(ctx, model.SettingNotifications, "true")
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

func (s *SettingService) SetNotifications(ctx context.Context, enabled bool) error {
	return s.repo.Save(ctx, model.SettingNotifications, strconv.FormatBool(enabled))
}
