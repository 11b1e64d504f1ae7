package ports

import (
	"context"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// TaskUpdate carries the mutable fields of a task. Empty fields are omitted
// from the write so the stored values survive a partial edit, mirroring how
// the upstream API drops absent keys from its update.
type TaskUpdate struct {
	Title       string
	Description string
	Priority    string
	Status      domain.TaskStatus
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// FindByIDs resolves a user's task-reference list to task documents.
	// Missing ids are skipped, not errors.
	FindByIDs(ctx context.Context, ids []string) ([]domain.Task, error)
	// Update applies u to the task with the given id. A non-matching id is
	// not an error.
	Update(ctx context.Context, id string, u TaskUpdate) error
	// Delete removes the task with the given id. A non-matching id is not
	// an error. The deleted task is returned when one matched, so callers
	// can unlink it from its owner.
	Delete(ctx context.Context, id string) (*domain.Task, error)
}
