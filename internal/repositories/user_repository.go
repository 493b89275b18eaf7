package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	model "task-assign-system.com/task-assign-system/internal/models"
)

// UserRepository reads the user directory table shared with the
// authentication service.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Summaries resolves ids to user summaries. Unknown ids are absent from the
// returned map.
func (r *UserRepository) Summaries(ctx context.Context, ids []string) (map[string]model.UserSummary, error) {
	out := make(map[string]model.UserSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []model.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "email").
		Where("id IN ?", ids).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	for _, u := range users {
		out[u.ID] = u.Summary()
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
