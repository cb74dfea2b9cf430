// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/customer-api/internal/handler"
	"github.com/deppfellow/customer-api/internal/middleware"
	"github.com/deppfellow/customer-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with global middleware and every route.
//
// Order matters: the request id exists before the New Relic transaction is
// decorated and before the request logger is built, and the request logger
// runs inside the context enhancer so its line carries the request fields.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
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
	registerCustomerRoutes(router, h)

	return router
}
