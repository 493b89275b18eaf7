package services

import (
	"context"
	"math"
	"strconv"
	"strings"

	"task-assign-system.com/task-assign-system/internal/constants"
	apperrors "task-assign-system.com/task-assign-system/internal/errors"
	model "task-assign-system.com/task-assign-system/internal/models"
	repository "task-assign-system.com/task-assign-system/internal/repositories"
)

// ListScope selects which of a user's tasks a listing returns.
type ListScope int

const (
	// ScopeAll lists tasks the user created or is assigned to.
	ScopeAll ListScope = iota
	// ScopeAssigned lists tasks assigned to the user by someone else.
	ScopeAssigned
	// ScopeCreated lists tasks the user created, including self-assigned ones.
	ScopeCreated
)

func (sc ListScope) filter(userID string) repository.TaskFilter {
	switch sc {
	case ScopeAssigned:
		return repository.TaskFilter{AssignedTo: userID, ExcludeCreatedBy: userID}
	case ScopeCreated:
		return repository.TaskFilter{CreatedBy: userID}
	default:
		return repository.TaskFilter{ParticipantID: userID}
	}
}

func (sc ListScope) String() string {
	switch sc {
	case ScopeAssigned:
		return "assigned"
	case ScopeCreated:
		return "created"
	default:
		return "all"
	}
}

// ListTasks returns one page of the requester's tasks, newest first. page
// and limit are raw caller values; anything that is not a positive integer
// falls back to the defaults. limit has no upper bound.
func (s *TaskService) ListTasks(ctx context.Context, requesterID string, scope ListScope, page, limit string) (*model.TaskPage, error) {
	if requesterID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	p := parsePositive(page, constants.DefaultPage)
	l := parsePositive(limit, constants.DefaultLimit)

	tasks, total, err := s.store.Find(ctx, repository.TaskQuery{
		Filter: scope.filter(requesterID),
		Limit:  l,
		Offset: offset(p, l),
	})
	if err != nil {
		return nil, s.storeFailure("list "+scope.String(), "", requesterID, err)
	}

	views, err := s.views(ctx, requesterID, tasks)
	if err != nil {
		return nil, err
	}

	return &model.TaskPage{
		Tasks: views,
		Count: len(views),
		Total: total,
		Page:  p,
		Pages: pageCount(total, l),
	}, nil
}

func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// offset computes (page-1)*limit, saturating instead of overflowing.
func offset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// pageCount is ceil(total/limit) without the overflow of total+limit-1.
func pageCount(total int64, limit int) int64 {
	l := int64(limit)
	pages := total / l
	if total%l != 0 {
		pages++
	}
	return pages
}

func (s *TaskService) view(ctx context.Context, requesterID string, task *model.Task) (*model.TaskView, error) {
	views, err := s.views(ctx, requesterID, []model.Task{*task})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// views resolves creator and assignee ids to user summaries with a single
// directory lookup.
func (s *TaskService) views(ctx context.Context, requesterID string, tasks []model.Task) ([]model.TaskView, error) {
	out := make([]model.TaskView, 0, len(tasks))
	if len(tasks) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(tasks)*2)
	for _, t := range tasks {
		ids = append(ids, t.CreatedBy, t.AssignedTo)
	}

	users, err := s.users.Summaries(ctx, ids)
	if err != nil {
		return nil, s.storeFailure("resolve users", "", requesterID, err)
	}

	for _, t := range tasks {
		out = append(out, model.TaskView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			DueDate:     t.DueDate,
			Priority:    t.Priority,
			Status:      t.Status,
			AssignedTo:  summaryRef(users, t.AssignedTo),
			CreatedBy:   summaryRef(users, t.CreatedBy),
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		})
	}
	return out, nil
}

func summaryRef(users map[string]model.UserSummary, id string) *model.UserSummary {
	u, ok := users[id]
	if !ok {
		return nil
	}
	return &u
}
