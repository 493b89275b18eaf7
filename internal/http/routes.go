package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "task-assign-system.com/task-assign-system/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, jwtSecret []byte, rateLimitPerMinute int) {
	e.GET("/healthz", h.Health)

	tasks := e.Group("/tasks",
		middleware.Identity(jwtSecret),
		middleware.RateLimiter(rateLimitPerMinute, time.Minute),
	)

	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.GET("/assigned", h.ListAssignedTasks)
	tasks.GET("/created", h.ListCreatedTasks)
	tasks.GET("/:id", h.GetTask)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.PATCH("/:id/status", h.UpdateTaskStatus)
	tasks.DELETE("/:id", h.DeleteTask)
}
