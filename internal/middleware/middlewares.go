package middleware

import (
	"github.com/deppfellow/customer-api/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups every middleware component used by the HTTP server,
// so the router receives one object instead of many.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer puts a request-scoped logger on every request.
	ContextEnhancer *ContextEnhancer

	// Tracing installs New Relic transactions and custom attributes.
	Tracing *TracingMiddleware
}

// NewMiddlewares builds all middleware components from the application container.
//
// When New Relic is not configured nrApp stays nil and tracing degrades to a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
	}
}
