package validators

import (
	"strings"
	"time"

	"task-assign-system.com/task-assign-system/internal/constants"
	dto "task-assign-system.com/task-assign-system/internal/data_models"
	apperrors "task-assign-system.com/task-assign-system/internal/errors"
	"task-assign-system.com/task-assign-system/internal/services"
)

const dateLayout = "2006-01-02"

// ParseDueDate accepts YYYY-MM-DD or RFC 3339. An empty value yields nil.
func ParseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.ParseInLocation(dateLayout, raw, time.UTC); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, apperrors.ErrInvalidDueDate
}

func ParseCreateTaskRequest(r *dto.CreateTaskRequest) (services.CreateTaskInput, error) {
	due, err := ParseDueDate(r.DueDate)
	if err != nil {
		return services.CreateTaskInput{}, err
	}

	return services.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		Priority:    constants.TaskPriority(strings.TrimSpace(r.Priority)),
		AssignedTo:  strings.TrimSpace(r.AssignedTo),
	}, nil
}

func ParseUpdateTaskRequest(r *dto.UpdateTaskRequest) (services.UpdateTaskInput, error) {
	due, err := ParseDueDate(r.DueDate)
	if err != nil {
		return services.UpdateTaskInput{}, err
	}

	return services.UpdateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		Priority:    constants.TaskPriority(strings.TrimSpace(r.Priority)),
		Status:      constants.TaskStatus(strings.TrimSpace(r.Status)),
	}, nil
}
