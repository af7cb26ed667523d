package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskbox/internal/auth"
	apperrors "taskbox/internal/errors"
	"taskbox/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a task creation request. UserID is optional;
// when present it must match the authenticated subject.
type CreateTaskRequest struct {
	Content string `json:"content" validate:"required"`
	UserID  string `json:"userId"`
}

// CreateTask godoc
// @Summary Create a task for the authenticated user
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task content"
// @Success 200 {object} errors.MessageResponse
// @Failure 403 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /task [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	subject := auth.SubjectID(c)
	if req.UserID != "" && req.UserID != subject {
		return c.JSON(http.StatusForbidden, apperrors.MessageResponse{Message: "user mismatch"})
	}

	if _, err := h.taskService.Create(c.Request().Context(), subject, req.Content); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, apperrors.MessageResponse{Message: "user not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, apperrors.MessageResponse{Message: "added successfully"})
}

// ListTasks godoc
// @Summary List the authenticated user's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param userId query string false "User id"
// @Success 200 {array} model.Task
// @Failure 403 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	subject := auth.SubjectID(c)
	if id := c.QueryParam("userId"); id != "" && id != subject {
		return c.JSON(http.StatusForbidden, apperrors.MessageResponse{Message: "user mismatch"})
	}

	tasks, err := h.taskService.List(c.Request().Context(), subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, apperrors.MessageResponse{Message: "user not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, tasks)
}
