package cache

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	model "task-assign-system.com/task-assign-system/internal/models"
)

// mockUserCache is a simple in-memory cache for testing
type mockUserCache struct {
	mu      sync.Mutex
	entries map[string]model.UserSummary
	failGet bool
	failSet bool
}

func newMockUserCache() *mockUserCache {
	return &mockUserCache{entries: make(map[string]model.UserSummary)}
}

func (m *mockUserCache) Get(ctx context.Context, id string) (model.UserSummary, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failGet {
		return model.UserSummary{}, false, errors.New("redis down")
	}
	u, ok := m.entries[id]
	return u, ok, nil
}

func (m *mockUserCache) Set(ctx context.Context, user model.UserSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSet {
		return errors.New("redis down")
	}
	m.entries[user.ID] = user
	return nil
}

type countingDirectory struct {
	users    map[string]model.UserSummary
	requests [][]string
	err      error
}

func (d *countingDirectory) Summaries(ctx context.Context, ids []string) (map[string]model.UserSummary, error) {
	d.requests = append(d.requests, ids)
	if d.err != nil {
		return nil, d.err
	}
	out := make(map[string]model.UserSummary)
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func newDirectory() *countingDirectory {
	return &countingDirectory{users: map[string]model.UserSummary{
		"u1": {ID: "u1", Name: "Ann", Email: "ann@example.com"},
		"u2": {ID: "u2", Name: "Ben", Email: "ben@example.com"},
	}}
}

func TestCachedDirectory_CacheAside(t *testing.T) {
	source := newDirectory()
	userCache := newMockUserCache()
	dir := NewCachedDirectory(source, userCache, log.New(io.Discard))
	ctx := context.Background()

	got, err := dir.Summaries(ctx, []string{"u1", "u2", "u1", "ghost"})
	if err != nil {
		t.Fatalf("Summaries() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if len(source.requests) != 1 || len(source.requests[0]) != 3 {
		t.Fatalf("expected one deduplicated directory call, got %v", source.requests)
	}

	got, err = dir.Summaries(ctx, []string{"u1", "u2"})
	if err != nil {
		t.Fatalf("Summaries() error = %v", err)
	}
	if got["u2"].Name != "Ben" {
		t.Errorf("expected cached summary for u2, got %+v", got["u2"])
	}
	if len(source.requests) != 1 {
		t.Errorf("expected cache hits to skip the directory, got %d calls", len(source.requests))
	}
}

func TestCachedDirectory_CacheFailuresFallThrough(t *testing.T) {
	source := newDirectory()
	userCache := newMockUserCache()
	userCache.failGet = true
	userCache.failSet = true
	dir := NewCachedDirectory(source, userCache, log.New(io.Discard))

	got, err := dir.Summaries(context.Background(), []string{"u1"})
	if err != nil {
		t.Fatalf("expected cache errors to be tolerated, got %v", err)
	}
	if got["u1"].Email != "ann@example.com" {
		t.Errorf("expected summary from directory, got %+v", got["u1"])
	}
}

func TestCachedDirectory_DirectoryFailure(t *testing.T) {
	source := newDirectory()
	source.err = errors.New("db down")
	dir := NewCachedDirectory(source, newMockUserCache(), log.New(io.Discard))

	if _, err := dir.Summaries(context.Background(), []string{"u1"}); err == nil {
		t.Fatal("expected directory error to propagate")
	}
}
