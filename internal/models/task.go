package model

import (
	"time"

	"task-assign-system.com/task-assign-system/internal/constants"
)

type Task struct {
	ID          string                 `gorm:"primaryKey;size:36" json:"id"`
	Title       string                 `gorm:"not null" json:"title"`
	Description string                 `gorm:"not null" json:"description"`
	DueDate     *time.Time             `json:"due_date"`
	Priority    constants.TaskPriority `gorm:"type:varchar(10)" json:"priority"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null" json:"status"`
	AssignedTo  string                 `gorm:"size:36;not null;index" json:"assigned_to"`
	CreatedBy   string                 `gorm:"size:36;not null;index" json:"created_by"`
	CreatedAt   time.Time              `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// TaskView is a Task with its user references resolved to summaries.
// A nil summary means the referenced user no longer exists in the directory.
type TaskView struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	DueDate     *time.Time             `json:"due_date"`
	Priority    constants.TaskPriority `json:"priority"`
	Status      constants.TaskStatus   `json:"status"`
	AssignedTo  *UserSummary           `json:"assigned_to"`
	CreatedBy   *UserSummary           `json:"created_by"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type TaskPage struct {
	Tasks []TaskView `json:"tasks"`
	Count int        `json:"count"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Pages int64      `json:"pages"`
}
