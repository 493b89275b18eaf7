package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-assign-system.com/task-assign-system/internal/constants"
	model "task-assign-system.com/task-assign-system/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

var ErrTaskNotFound = errors.New("task not found")

// TaskFilter selects tasks relative to one user. Exactly one of the modes
// is expected to be set; an empty filter matches every task.
type TaskFilter struct {
	// ParticipantID matches tasks created by or assigned to the user.
	ParticipantID string
	// AssignedTo matches tasks assigned to the user.
	AssignedTo string
	// CreatedBy matches tasks created by the user.
	CreatedBy string
	// ExcludeCreatedBy drops tasks created by the user.
	ExcludeCreatedBy string
}

type TaskQuery struct {
	Filter TaskFilter
	Limit  int
	Offset int
}

// TaskFields is the set of columns a task update may write.
// DueDate is written only when SetDueDate is true, so a nil DueDate clears it.
type TaskFields struct {
	Title       *string
	Description *string
	SetDueDate  bool
	DueDate     *time.Time
	Priority    *constants.TaskPriority
	Status      *constants.TaskStatus
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	task.UpdatedAt = task.CreatedAt

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Find returns one page of matching tasks, newest first, along with the
// number of tasks matching the filter overall.
func (r *TaskRepository) Find(ctx context.Context, q TaskQuery) ([]model.Task, int64, error) {
	base := applyFilter(r.db.WithContext(ctx).Model(&model.Task{}), q.Filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	tasks := make([]model.Task, 0)
	err := base.Session(&gorm.Session{}).
		Order("created_at desc").Order("id desc").
		Limit(q.Limit).Offset(q.Offset).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find tasks: %w", err)
	}

	return tasks, total, nil
}

func applyFilter(db *gorm.DB, f TaskFilter) *gorm.DB {
	if f.ParticipantID != "" {
		db = db.Where("created_by = ? OR assigned_to = ?", f.ParticipantID, f.ParticipantID)
	}
	if f.AssignedTo != "" {
		db = db.Where("assigned_to = ?", f.AssignedTo)
	}
	if f.CreatedBy != "" {
		db = db.Where("created_by = ?", f.CreatedBy)
	}
	if f.ExcludeCreatedBy != "" {
		db = db.Where("created_by <> ?", f.ExcludeCreatedBy)
	}
	return db
}

// UpdateFields writes the non-nil fields and returns the stored task.
func (r *TaskRepository) UpdateFields(ctx context.Context, id string, fields TaskFields) (*model.Task, error) {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if fields.Title != nil {
		updates["title"] = *fields.Title
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.SetDueDate {
		updates["due_date"] = fields.DueDate
	}
	if fields.Priority != nil {
		updates["priority"] = string(*fields.Priority)
	}
	if fields.Status != nil {
		updates["status"] = string(*fields.Status)
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrTaskNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
