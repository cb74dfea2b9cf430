package service

import (
	"time"

	"github.com/deppfellow/customer-api/internal/lib/upstream"
	"github.com/deppfellow/customer-api/internal/repository"
	"github.com/deppfellow/customer-api/internal/server"
)

type Services struct {
	Customer *CustomerService
	Upstream *upstream.Client
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	upstreamClient, err := upstream.NewClient(
		s.Config.Upstream.DemoAPIURL,
		time.Duration(s.Config.Upstream.Timeout)*time.Second,
	)
	if err != nil {
		return nil, err
	}

	return &Services{
		Customer: NewCustomerService(repos.Customer),
		Upstream: upstreamClient,
	}, nil
}
