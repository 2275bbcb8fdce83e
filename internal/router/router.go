package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/stridelog/backend/api/handler"
)

type Handlers struct {
	Challenge *apiHandler.ChallengeHandler
	Progress  *apiHandler.ProgressHandler
	Profile   *apiHandler.ProfileHandler
	Backup    *apiHandler.BackupHandler
	System    *apiHandler.SystemHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, logging func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	wrap := logging
	if wrap == nil {
		wrap = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}

	r.GET("/health", handlers.Health.Check)

	// Challenge lifecycle
	r.GET("/api/v1/challenges", wrap(handlers.Challenge.List))
	r.POST("/api/v1/challenges", wrap(handlers.Challenge.Create))
	r.GET("/api/v1/challenges/active", wrap(handlers.Challenge.Active))
	r.GET("/api/v1/challenges/{id}", wrap(handlers.Challenge.Get))
	r.PUT("/api/v1/challenges/{id}", wrap(handlers.Challenge.Update))
	r.DELETE("/api/v1/challenges/{id}", wrap(handlers.Challenge.Delete))
	r.POST("/api/v1/challenges/{id}/activate", wrap(handlers.Challenge.Activate))
	r.POST("/api/v1/challenges/{id}/pause", wrap(handlers.Challenge.Pause))
	r.POST("/api/v1/challenges/{id}/reconcile", wrap(handlers.Challenge.Reconcile))
	r.POST("/api/v1/challenges/{id}/commitment", wrap(handlers.Challenge.Commitment))

	// Tasks live inside their challenge
	r.POST("/api/v1/challenges/{id}/tasks", wrap(handlers.Challenge.AddTask))
	r.PUT("/api/v1/challenges/{id}/tasks/{taskId}", wrap(handlers.Challenge.UpdateTask))
	r.DELETE("/api/v1/challenges/{id}/tasks/{taskId}", wrap(handlers.Challenge.DeleteTask))

	// Progress, stats, reflections
	r.GET("/api/v1/challenges/{id}/progress", wrap(handlers.Progress.History))
	r.POST("/api/v1/challenges/{id}/progress", wrap(handlers.Progress.Record))
	r.GET("/api/v1/challenges/{id}/progress/today", wrap(handlers.Progress.Today))
	r.GET("/api/v1/challenges/{id}/stats", wrap(handlers.Progress.Stats))
	r.GET("/api/v1/challenges/{id}/reflections", wrap(handlers.Progress.Reflections))
	r.POST("/api/v1/challenges/{id}/reflections", wrap(handlers.Progress.AddReflection))

	// Settings and profile singletons
	r.GET("/api/v1/settings", wrap(handlers.Profile.GetSettings))
	r.PUT("/api/v1/settings", wrap(handlers.Profile.SaveSettings))
	r.GET("/api/v1/profile", wrap(handlers.Profile.GetProfile))
	r.PUT("/api/v1/profile", wrap(handlers.Profile.SaveProfile))

	// Backup
	r.GET("/api/v1/export", wrap(handlers.Backup.Export))
	r.POST("/api/v1/import", wrap(handlers.Backup.Import))
	r.DELETE("/api/v1/data", wrap(handlers.Backup.Clear))

	// System
	r.POST("/api/v1/system/wake", wrap(handlers.System.Wake))

	return r
}
