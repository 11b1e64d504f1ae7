package ports

import (
	"context"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks up a user by its normalized (lowercase) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// AppendTask pushes taskID onto the user's task-reference list.
	AppendTask(ctx context.Context, userID, taskID string) error
	// RemoveTask pulls taskID from the user's task-reference list.
	RemoveTask(ctx context.Context, userID, taskID string) error
}
