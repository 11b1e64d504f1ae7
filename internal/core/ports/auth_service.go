package ports

import (
	"context"

	"github.com/taskhub/task-manager-api/internal/core/domain"
)

// TaskGroups is the profile view of a user's tasks, bucketed by status.
type TaskGroups struct {
	YetToStart []domain.Task `json:"yetToStart"`
	InProgress []domain.Task `json:"inProgress"`
	Completed  []domain.Task `json:"completed"`
}

// AuthService implements registration, login and profile retrieval.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Profile resolves a user id to the account plus its tasks grouped by status.
	Profile(ctx context.Context, userID string) (*domain.User, *TaskGroups, error)
}
