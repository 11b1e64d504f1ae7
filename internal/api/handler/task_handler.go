package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-manager-api/internal/api/metrics"
	"github.com/taskhub/task-manager-api/internal/api/middleware"
	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

// TaskHandler exposes the task CRUD endpoints. All routes sit behind the
// auth middleware; edit and delete intentionally perform no ownership check
// beyond authentication (see DESIGN.md).
type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type taskRequest struct {
	Title       string `json:"title"       validate:"required,min=6"`
	Description string `json:"description" validate:"required,min=10"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

type taskResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Task    *domain.Task `json:"task,omitempty"`
}

// currentUser extracts the identity injected by the auth middleware.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication token missing")
	}
	return user, nil
}

// Add creates a task owned by the authenticated user.
//
// @Summary      Add a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      taskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/v1/add-task [post]
func (h *TaskHandler) Add(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.Add(c.Request().Context(), user.ID, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return fail(c, http.StatusBadRequest, "Status must be one of: Start, In Progress, Completed")
		}
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Status)).Inc()
	return c.JSON(http.StatusCreated, taskResponse{
		Success: true,
		Message: "Task added successfully",
		Task:    task,
	})
}

// Get fetches a single task by id.
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.taskService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return fail(c, http.StatusNotFound, "Task not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, taskResponse{
		Success: true,
		Message: "Task fetched successfully",
		Task:    task,
	})
}

// Edit replaces the task's fields. Editing an id that matches nothing still
// returns 200, mirroring the upstream contract.
func (h *TaskHandler) Edit(c echo.Context) error {
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	err := h.taskService.Edit(c.Request().Context(), c.Param("id"), ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return fail(c, http.StatusBadRequest, "Status must be one of: Start, In Progress, Completed")
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Task updated successfully"})
}

// Delete removes a task by id. Deleting an id that matches nothing still
// returns 200.
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.taskService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.TasksDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Task deleted successfully"})
}
