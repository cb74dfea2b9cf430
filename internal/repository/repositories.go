package repository

import (
	"github.com/deppfellow/customer-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Customer *CustomerRepository
}

// NewRepositories builds every repository on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Customer: NewCustomerRepository(s.DB.Pool),
	}
}
