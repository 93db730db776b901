package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/odelyak/campboard/internal/handler"
	"github.com/odelyak/campboard/internal/middleware"
)

// RegisterRegistry registers the camp catalog endpoints under
// /v1/registry.  The catalog never changes after startup, so responses
// are served through the Redis response cache when one is configured;
// cacheMW may be nil to serve uncached.
func RegisterRegistry(e *echo.Echo, h *handler.RegistryHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/v1/registry", middleware.JWTAuth(jwtSecret))
	if cacheMW != nil {
		g.Use(cacheMW)
	}

	g.GET("/divisions", h.Divisions)
	g.GET("/subdivisions", h.Subdivisions)
	g.GET("/resources", h.Resources)
}
