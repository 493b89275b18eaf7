package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"task-assign-system.com/task-assign-system/internal/constants"
	dto "task-assign-system.com/task-assign-system/internal/data_models"
	apperrors "task-assign-system.com/task-assign-system/internal/errors"
	middleware "task-assign-system.com/task-assign-system/internal/http/middlewares"
	"task-assign-system.com/task-assign-system/internal/http/validators"
	"task-assign-system.com/task-assign-system/internal/services"
)

type Handler struct {
	taskService *services.TaskService
}

func NewHandler(taskService *services.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	in, err := validators.ParseCreateTaskRequest(&req)
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	return h.list(c, services.ScopeAll)
}

func (h *Handler) ListAssignedTasks(c echo.Context) error {
	return h.list(c, services.ScopeAssigned)
}

func (h *Handler) ListCreatedTasks(c echo.Context) error {
	return h.list(c, services.ScopeCreated)
}

func (h *Handler) list(c echo.Context, scope services.ListScope) error {
	page, err := h.taskService.ListTasks(
		c.Request().Context(),
		middleware.UserID(c),
		scope,
		c.QueryParam("page"),
		c.QueryParam("limit"),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.taskService.GetTask(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return h.rejectPayload(c, apperrors.ErrInvalidJSON)
	}
	in, err := validators.ParseUpdateTaskRequest(&req)
	if err != nil {
		return h.rejectPayload(c, err)
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), middleware.UserID(c), c.Param("id"), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTaskStatus(c echo.Context) error {
	var req dto.UpdateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return h.rejectPayload(c, apperrors.ErrInvalidJSON)
	}

	task, err := h.taskService.UpdateTaskStatus(
		c.Request().Context(),
		middleware.UserID(c),
		c.Param("id"),
		constants.TaskStatus(req.Status),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

// rejectPayload reports a malformed update body only once the task exists
// and the requester may update it.
func (h *Handler) rejectPayload(c echo.Context, payloadErr error) error {
	if err := h.taskService.AuthorizeUpdate(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}
	return payloadErr
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.taskService.DeleteTask(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "task deleted"})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "ok"})
}
