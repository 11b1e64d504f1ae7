package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

// TaskService implements task CRUD on behalf of authenticated users.
type TaskService struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, logger: logger}
}

// Add creates a task owned by userID and appends its id to the owner's task
// list. The two writes are deliberately separate with no compensating
// rollback: a failed append leaves an orphaned task document behind and
// fails the request.
func (s *TaskService) Add(ctx context.Context, userID string, in ports.CreateTaskInput) (*domain.Task, error) {
	status := domain.TaskStatus(in.Status)
	if in.Status == "" {
		status = domain.StatusStart
	} else if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		Status:      status,
		UserID:      userID,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("task insert failed")
		return nil, err
	}

	if err := s.users.AppendTask(ctx, userID, created.ID); err != nil {
		// Second write of the two-step create failed; the task document
		// is now orphaned.
		s.logger.Error().Err(err).
			Str("user_id", userID).
			Str("task_id", created.ID).
			Msg("failed to append task to user list")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("user_id", userID).Msg("task added")
	return created, nil
}

// Get fetches a single task by id.
func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

// Edit updates the fields of the task with the given id. Fields left empty
// by the client keep their stored values. There is no ownership check
// against the caller, and editing a missing id is a silent no-op, matching
// the upstream behaviour this service reproduces.
func (s *TaskService) Edit(ctx context.Context, id string, in ports.UpdateTaskInput) error {
	status := domain.TaskStatus(in.Status)
	if in.Status != "" && !status.Valid() {
		return domain.ErrInvalidStatus
	}

	return s.tasks.Update(ctx, id, ports.TaskUpdate{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      status,
	})
}

// Delete removes the task with the given id and, when it existed, unlinks it
// from its owner's task list. No ownership check against the caller.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	deleted, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == nil {
		return nil
	}

	if err := s.users.RemoveTask(ctx, deleted.UserID, deleted.ID); err != nil {
		s.logger.Warn().Err(err).
			Str("task_id", deleted.ID).
			Str("user_id", deleted.UserID).
			Msg("failed to unlink deleted task from user list")
	}
	return nil
}
