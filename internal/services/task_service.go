package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"task-assign-system.com/task-assign-system/internal/constants"
	apperrors "task-assign-system.com/task-assign-system/internal/errors"
	model "task-assign-system.com/task-assign-system/internal/models"
	repository "task-assign-system.com/task-assign-system/internal/repositories"
)

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	Find(ctx context.Context, q repository.TaskQuery) ([]model.Task, int64, error)
	UpdateFields(ctx context.Context, id string, fields repository.TaskFields) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}

type UserDirectory interface {
	Summaries(ctx context.Context, ids []string) (map[string]model.UserSummary, error)
}

type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    constants.TaskPriority
	AssignedTo  string
}

// UpdateTaskInput carries the full editable field set. Zero values are
// written as-is, so callers resend fields they want to keep.
type UpdateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    constants.TaskPriority
	Status      constants.TaskStatus
}

// TaskService applies the authorization, validation and shaping rules for
// task operations on behalf of an authenticated requester. It holds no
// mutable state; concurrent read-then-write operations on the same task are
// last-write-wins.
type TaskService struct {
	store  TaskStore
	users  UserDirectory
	logger *log.Logger
	now    func() time.Time
}

func NewTaskService(store TaskStore, users UserDirectory, logger *log.Logger) *TaskService {
	return &TaskService{
		store:  store,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, requesterID string, in CreateTaskInput) (*model.TaskView, error) {
	if requesterID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := s.validateCreate(ctx, in); err != nil {
		return nil, err
	}

	task := &model.Task{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      constants.StatusPending,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   requesterID,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.Create(ctx, task); err != nil {
		return nil, s.storeFailure("create", "", requesterID, err)
	}

	return s.view(ctx, requesterID, task)
}

func (s *TaskService) GetTask(ctx context.Context, requesterID, taskID string) (*model.TaskView, error) {
	task, err := s.loadForParticipant(ctx, "get", requesterID, taskID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, requesterID, task)
}

func (s *TaskService) UpdateTask(ctx context.Context, requesterID, taskID string, in UpdateTaskInput) (*model.TaskView, error) {
	if _, err := s.loadForParticipant(ctx, "update", requesterID, taskID); err != nil {
		return nil, err
	}
	if err := s.validateUpdate(in); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateFields(ctx, taskID, repository.TaskFields{
		Title:       &in.Title,
		Description: &in.Description,
		SetDueDate:  true,
		DueDate:     in.DueDate,
		Priority:    &in.Priority,
		Status:      &in.Status,
	})
	if err != nil {
		return nil, s.writeFailure("update", taskID, requesterID, err)
	}

	return s.view(ctx, requesterID, updated)
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, requesterID, taskID string, status constants.TaskStatus) (*model.TaskView, error) {
	if _, err := s.loadForParticipant(ctx, "update status", requesterID, taskID); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	updated, err := s.store.UpdateFields(ctx, taskID, repository.TaskFields{
		Status: &status,
	})
	if err != nil {
		return nil, s.writeFailure("update status", taskID, requesterID, err)
	}

	return s.view(ctx, requesterID, updated)
}

// AuthorizeUpdate runs the same checks as UpdateTask before any payload is
// looked at. Callers use it to order a payload error after NotFound and
// Forbidden.
func (s *TaskService) AuthorizeUpdate(ctx context.Context, requesterID, taskID string) error {
	_, err := s.loadForParticipant(ctx, "update", requesterID, taskID)
	return err
}

func (s *TaskService) DeleteTask(ctx context.Context, requesterID, taskID string) error {
	task, err := s.load(ctx, "delete", requesterID, taskID)
	if err != nil {
		return err
	}
	if !isCreator(task, requesterID) {
		s.logger.Debug("delete denied", "task_id", taskID, "user_id", requesterID)
		return apperrors.ErrNotTaskCreator
	}

	if err := s.store.Delete(ctx, taskID); err != nil {
		return s.writeFailure("delete", taskID, requesterID, err)
	}
	return nil
}

// load fetches a task, reporting NotFound before any authorization check so
// a missing id looks the same to every requester.
func (s *TaskService) load(ctx context.Context, op, requesterID, taskID string) (*model.Task, error) {
	if requesterID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if strings.TrimSpace(taskID) == "" {
		return nil, apperrors.ErrTaskIDRequired
	}

	task, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, s.storeFailure(op, taskID, requesterID, err)
	}
	return task, nil
}

func (s *TaskService) loadForParticipant(ctx context.Context, op, requesterID, taskID string) (*model.Task, error) {
	task, err := s.load(ctx, op, requesterID, taskID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(task, requesterID) {
		s.logger.Debug(op+" denied", "task_id", taskID, "user_id", requesterID)
		return nil, apperrors.ErrNotTaskParticipant
	}
	return task, nil
}

// writeFailure maps a write error. A task deleted between the
// authorization read and the write is reported as NotFound.
func (s *TaskService) writeFailure(op, taskID, requesterID string, err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return apperrors.ErrTaskNotFound
	}
	return s.storeFailure(op, taskID, requesterID, err)
}

func (s *TaskService) storeFailure(op, taskID, requesterID string, err error) error {
	s.logger.Error("task store failure", "op", op, "task_id", taskID, "user_id", requesterID, "err", err)
	return apperrors.StoreFailure(err)
}
