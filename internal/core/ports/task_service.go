package ports

import (
	"context"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// CreateTaskInput carries the fields of a new task. Empty Priority and
// Status fall back to their defaults ("Medium" and "Start").
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
}

// UpdateTaskInput carries the replacement fields for an existing task.
type UpdateTaskInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
}

// TaskService defines use-case operations for tasks.
type TaskService interface {
	Add(ctx context.Context, userID string, in CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Edit(ctx context.Context, id string, in UpdateTaskInput) error
	Delete(ctx context.Context, id string) error
}
