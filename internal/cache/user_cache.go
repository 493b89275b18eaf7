package cache

import (
	"context"

	model "task-assign-system.com/task-assign-system/internal/models"
)

type UserCache interface {
	// Get reports false with a nil error on a cache miss.
	Get(ctx context.Context, id string) (model.UserSummary, bool, error)

	Set(ctx context.Context, user model.UserSummary) error
}
