// Package router builds the Echo router.
//
// It installs the middleware chain and registers the system and API route
// groups against their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/label-lookup/internal/handler"
	"github.com/deppfellow/label-lookup/internal/middleware"
	"github.com/deppfellow/label-lookup/internal/server"
)

// NewRouter returns the configured Echo instance.
//
// Middleware order matters: RequestID must precede the context enhancer,
// and the New Relic middleware must precede anything reading the
// transaction.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerLabelRoutes(v1, h)

	return router
}
