package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	model "task-assign-system.com/task-assign-system/internal/models"
)

const userKeyPrefix = "user:summary:"

type RedisUserCache struct {
	client rueidis.Client
	ttl    time.Duration
}

func NewRedisUserCache(client rueidis.Client, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisUserCache) Get(ctx context.Context, id string) (model.UserSummary, bool, error) {
	cmd := r.client.B().Get().Key(userKeyPrefix + id).Build()
	data, err := r.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return model.UserSummary{}, false, nil
		}
		return model.UserSummary{}, false, fmt.Errorf("cache get error: %w", err)
	}

	var user model.UserSummary
	if err := json.Unmarshal(data, &user); err != nil {
		return model.UserSummary{}, false, fmt.Errorf("cache unmarshal error: %w", err)
	}
	return user, true, nil
}

func (r *RedisUserCache) Set(ctx context.Context, user model.UserSummary) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	cmd := r.client.B().Set().
		Key(userKeyPrefix + user.ID).
		Value(string(data)).
		ExSeconds(int64(r.ttl / time.Second)).
		Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}
