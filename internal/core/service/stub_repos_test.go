package service

import (
	"context"
	"fmt"

	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository.
type stubUserRepo struct {
	users     map[string]*domain.User // keyed by id
	nextID    int
	appendErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Tasks = append([]string(nil), u.Tasks...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) AppendTask(_ context.Context, userID, taskID string) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Tasks = append(u.Tasks, taskID)
	return nil
}

func (r *stubUserRepo) RemoveTask(_ context.Context, userID, taskID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.Tasks[:0]
	for _, id := range u.Tasks {
		if id != taskID {
			kept = append(kept, id)
		}
	}
	u.Tasks = kept
	return nil
}

// stubTaskRepo is an in-memory ports.TaskRepository.
type stubTaskRepo struct {
	tasks  map[string]*domain.Task
	nextID int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.nextID++
	clone := cloneTask(task)
	clone.ID = fmt.Sprintf("task_%d", r.nextID)
	r.tasks[clone.ID] = clone
	return cloneTask(clone), nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Task, error) {
	tasks := []domain.Task{}
	for _, id := range ids {
		if t, ok := r.tasks[id]; ok {
			tasks = append(tasks, *cloneTask(t))
		}
	}
	return tasks, nil
}

func (r *stubTaskRepo) Update(_ context.Context, id string, u ports.TaskUpdate) error {
	t, ok := r.tasks[id]
	if !ok {
		return nil // missing id is a silent no-op
	}
	// Empty fields are preserved, like the mongo repository's $set.
	if u.Title != "" {
		t.Title = u.Title
	}
	if u.Description != "" {
		t.Description = u.Description
	}
	if u.Priority != "" {
		t.Priority = u.Priority
	}
	if u.Status != "" {
		t.Status = u.Status
	}
	return nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	delete(r.tasks, id)
	return cloneTask(t), nil
}
