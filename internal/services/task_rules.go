package services

import (
	"context"
	"strings"
	"time"

	apperrors "task-assign-system.com/task-assign-system/internal/errors"
	model "task-assign-system.com/task-assign-system/internal/models"
)

// isParticipant grants read and update rights.
func isParticipant(task *model.Task, userID string) bool {
	return task.CreatedBy == userID || task.AssignedTo == userID
}

// isCreator grants delete rights; assignees cannot delete.
func isCreator(task *model.Task, userID string) bool {
	return task.CreatedBy == userID
}

func (s *TaskService) validateCreate(ctx context.Context, in CreateTaskInput) error {
	if strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		in.DueDate == nil ||
		in.Priority == "" ||
		strings.TrimSpace(in.AssignedTo) == "" {
		return apperrors.ErrMissingTaskFields
	}
	if !in.Priority.Valid() {
		return apperrors.ErrInvalidPriority
	}
	if err := s.checkDueDate(*in.DueDate); err != nil {
		return err
	}

	found, err := s.users.Summaries(ctx, []string{in.AssignedTo})
	if err != nil {
		return s.storeFailure("create", "", "", err)
	}
	if _, ok := found[in.AssignedTo]; !ok {
		return apperrors.ErrUnknownAssignee
	}
	return nil
}

func (s *TaskService) validateUpdate(in UpdateTaskInput) error {
	if in.Priority != "" && !in.Priority.Valid() {
		return apperrors.ErrInvalidPriority
	}
	if in.Status != "" && !in.Status.Valid() {
		return apperrors.ErrInvalidStatus
	}
	if in.DueDate != nil {
		return s.checkDueDate(*in.DueDate)
	}
	return nil
}

// checkDueDate rejects dates strictly before today. Only the calendar day
// in UTC is compared.
func (s *TaskService) checkDueDate(due time.Time) error {
	if calendarDay(due).Before(calendarDay(s.now())) {
		return apperrors.ErrDueDateInPast
	}
	return nil
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
