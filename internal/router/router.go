package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/focusflow/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Task     *apiHandler.TaskHandler
	Profile  *apiHandler.ProfileHandler
	Focus    *apiHandler.FocusHandler
	Reminder *apiHandler.ReminderHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/signup", handlers.Auth.Signup)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/logout", handlers.Auth.Logout)
	r.GET("/api/v1/auth/session", handlers.Auth.Session)

	// Protected routes
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.List))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.Create))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.Get))
	r.PATCH("/api/v1/tasks/{id}", authMiddleware(handlers.Task.Patch))
	r.POST("/api/v1/tasks/{id}/toggle", authMiddleware(handlers.Task.Toggle))
	r.POST("/api/v1/tasks/{id}/subtasks", authMiddleware(handlers.Task.AddSubtask))
	r.POST("/api/v1/tasks/{id}/subtasks/{subId}/toggle", authMiddleware(handlers.Task.ToggleSubtask))

	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.Get))

	r.GET("/api/v1/focus", authMiddleware(handlers.Focus.Status))
	r.POST("/api/v1/focus/{taskId}/start", authMiddleware(handlers.Focus.Start))
	r.POST("/api/v1/focus/pause", authMiddleware(handlers.Focus.Pause))
	r.POST("/api/v1/focus/resume", authMiddleware(handlers.Focus.Resume))
	r.POST("/api/v1/focus/stop", authMiddleware(handlers.Focus.Stop))

	r.GET("/api/v1/reminders/active", authMiddleware(handlers.Reminder.Active))
	r.POST("/api/v1/reminders/dismiss", authMiddleware(handlers.Reminder.Dismiss))

	return r
}
