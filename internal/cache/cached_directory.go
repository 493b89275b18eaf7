package cache

import (
	"context"

	"github.com/charmbracelet/log"

	model "task-assign-system.com/task-assign-system/internal/models"
)

type Directory interface {
	Summaries(ctx context.Context, ids []string) (map[string]model.UserSummary, error)
}

// CachedDirectory serves user summaries cache-aside. Cache failures are
// logged and treated as misses; only directory failures reach the caller.
type CachedDirectory struct {
	source Directory
	cache  UserCache
	logger *log.Logger
}

func NewCachedDirectory(source Directory, cache UserCache, logger *log.Logger) *CachedDirectory {
	return &CachedDirectory{
		source: source,
		cache:  cache,
		logger: logger,
	}
}

func (d *CachedDirectory) Summaries(ctx context.Context, ids []string) (map[string]model.UserSummary, error) {
	out := make(map[string]model.UserSummary, len(ids))
	seen := make(map[string]struct{}, len(ids))
	var missing []string

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		user, ok, err := d.cache.Get(ctx, id)
		if err != nil {
			d.logger.Warn("user cache read failed", "user_id", id, "err", err)
		}
		if ok {
			out[id] = user
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := d.source.Summaries(ctx, missing)
	if err != nil {
		return nil, err
	}

	for id, user := range loaded {
		out[id] = user
		if err := d.cache.Set(ctx, user); err != nil {
			d.logger.Warn("user cache write failed", "user_id", id, "err", err)
		}
	}
	return out, nil
}
