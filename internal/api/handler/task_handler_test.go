package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/taskhub/task-manager-api/internal/api/middleware"
	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

type stubTaskService struct {
	addFn    func(ctx context.Context, userID string, in ports.CreateTaskInput) (*domain.Task, error)
	getFn    func(ctx context.Context, id string) (*domain.Task, error)
	editFn   func(ctx context.Context, id string, in ports.UpdateTaskInput) error
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubTaskService) Add(ctx context.Context, userID string, in ports.CreateTaskInput) (*domain.Task, error) {
	return s.addFn(ctx, userID, in)
}

func (s *stubTaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.getFn(ctx, id)
}

func (s *stubTaskService) Edit(ctx context.Context, id string, in ports.UpdateTaskInput) error {
	return s.editFn(ctx, id, in)
}

func (s *stubTaskService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestTaskHandler_Add_Success(t *testing.T) {
	stub := &stubTaskService{
		addFn: func(ctx context.Context, userID string, in ports.CreateTaskInput) (*domain.Task, error) {
			if userID != "user_1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.Task{
				ID:          "task_1",
				Title:       in.Title,
				Description: in.Description,
				Priority:    domain.PriorityMedium,
				Status:      domain.StatusStart,
				UserID:      userID,
			}, nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/add-task",
		`{"title":"write docs","description":"write the user documentation"}`)
	c.Set(middleware.UserContextKey, &domain.User{ID: "user_1"})
	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Task added successfully" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	task, ok := resp["task"].(map[string]any)
	if !ok || task["title"] != "write docs" || task["status"] != "Start" {
		t.Fatalf("unexpected task payload: %+v", task)
	}
}

func TestTaskHandler_Add_NoUserInContext(t *testing.T) {
	stub := &stubTaskService{
		addFn: func(ctx context.Context, userID string, in ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/v1/add-task",
		`{"title":"write docs","description":"write the user documentation"}`)
	err := h.Add(c)
	if err == nil {
		t.Fatalf("expected error without authenticated user")
	}
}

func TestTaskHandler_Add_Validation(t *testing.T) {
	stub := &stubTaskService{
		addFn: func(ctx context.Context, userID string, in ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	cases := []string{
		`{"title":"short","description":"write the user documentation"}`, // title < 6
		`{"title":"write docs","description":"too short"}`,               // description < 10
		`{"description":"write the user documentation"}`,                 // title missing
	}
	for _, body := range cases {
		c, rec := newTestContext(t, http.MethodPost, "/api/v1/add-task", body)
		c.Set(middleware.UserContextKey, &domain.User{ID: "user_1"})
		_ = h.Add(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, rec.Code)
		}
	}
}

func TestTaskHandler_Add_InvalidStatus(t *testing.T) {
	stub := &stubTaskService{
		addFn: func(ctx context.Context, userID string, in ports.CreateTaskInput) (*domain.Task, error) {
			return nil, domain.ErrInvalidStatus
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/add-task",
		`{"title":"write docs","description":"write the user documentation","status":"Done"}`)
	c.Set(middleware.UserContextKey, &domain.User{ID: "user_1"})
	_ = h.Add(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTaskHandler_Get_NotFound(t *testing.T) {
	stub := &stubTaskService{
		getFn: func(ctx context.Context, id string) (*domain.Task, error) {
			return nil, domain.ErrTaskNotFound
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/get-task/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	_ = h.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Task not found" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestTaskHandler_Edit_Success(t *testing.T) {
	var gotID string
	stub := &stubTaskService{
		editFn: func(ctx context.Context, id string, in ports.UpdateTaskInput) error {
			gotID = id
			return nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/api/v1/edit-task/task_1",
		`{"title":"revise docs","description":"revise the user documentation","status":"Completed"}`)
	c.SetParamNames("id")
	c.SetParamValues("task_1")
	if err := h.Edit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "task_1" {
		t.Fatalf("unexpected id: %s", gotID)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Task updated successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestTaskHandler_Delete_Success(t *testing.T) {
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, id string) error {
			return nil
		},
	}
	h := NewTaskHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/api/v1/delete-task/task_1", "")
	c.SetParamNames("id")
	c.SetParamValues("task_1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Task deleted successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}
}
