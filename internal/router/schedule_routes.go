package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/odelyak/campboard/internal/handler"    // scheduling session handlers
	"github.com/odelyak/campboard/internal/middleware" // JWT + role middlewares
	"github.com/odelyak/campboard/internal/model"
)

// RegisterSchedule registers the scheduling session endpoints under /v1.
// All routes require a valid JWT and an editing role (ADMIN or
// SCHEDULER); per-subdivision authorization happens inside the session,
// where the registry knows which editor owns what.
func RegisterSchedule(e *echo.Echo, h *handler.SessionHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1/sessions",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleScheduler),
	)
	if limiter != nil {
		g.Use(limiter)
	}

	// ---- Lifecycle ----
	g.POST("", h.Start)
	g.DELETE("/:sid", h.Stop)

	// ---- Board views ----
	g.GET("/:sid/board", h.Board)
	g.GET("/:sid/subdivisions", h.Subdivisions)
	g.GET("/:sid/divisions-to-schedule", h.DivisionsToSchedule)
	g.GET("/:sid/bunks-to-schedule", h.BunksToSchedule)

	// ---- Lock state machine ----
	g.POST("/:sid/draft", h.Draft)
	g.POST("/:sid/subdivisions/:id/lock", h.Lock)
	g.POST("/:sid/subdivisions/:id/unlock", h.Unlock)

	// ---- Mutations ----
	g.POST("/:sid/assignments", h.Assign)
	g.DELETE("/:sid/assignments", h.Clear)

	// ---- Availability and capacity ----
	g.GET("/:sid/blocked-map", h.BlockedMap)
	g.GET("/:sid/availability", h.Availability)
	g.GET("/:sid/capacity", h.Capacity)
	g.GET("/:sid/allocations", h.Allocations)
}
