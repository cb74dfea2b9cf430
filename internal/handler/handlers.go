package handler

import (
	"github.com/deppfellow/customer-api/internal/server"
	"github.com/deppfellow/customer-api/internal/service"
)

// Handlers groups all HTTP handlers so router setup receives one object.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Customer *CustomerHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	var db Pinger
	if s.DB != nil {
		db = s.DB
	}

	return &Handlers{
		Health:   NewHealthHandler(s, db),
		OpenAPI:  NewOpenAPIHandler(s, "static/openapi.html"),
		Customer: NewCustomerHandler(s, services.Customer, services.Upstream),
	}
}
