package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/customer-api/internal/errs"
	"github.com/deppfellow/customer-api/internal/model"
	"github.com/deppfellow/customer-api/internal/repository"
	"github.com/deppfellow/customer-api/internal/sqlerr"
)

// CustomerRepository is the storage CustomerService depends on.
type CustomerRepository interface {
	GetByID(ctx context.Context, customerID string) (*model.Customer, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	Create(ctx context.Context, c model.Customer) error
	Update(ctx context.Context, c model.Customer) (int64, error)
	Delete(ctx context.Context, customerID string) error
}

type CustomerService struct {
	repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// Create inserts c and returns the stored row.
//
// A duplicate id is a 400 CUSTOMER_ALREADY_EXISTS. Any other storage failure
// is a 500 carrying the driver message.
func (s *CustomerService) Create(ctx context.Context, c model.Customer) (*model.Customer, error) {
	if err := s.repo.Create(ctx, c); err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			code := sqlerr.GenerateErrorCode(repository.CustomersTable.Name, sqlerr.UniqueViolation)
			return nil, errs.NewBadRequestError(
				fmt.Sprintf("customer ID '%s' already exists", c.CustomerID), true, &code, nil)
		}
		return nil, errs.NewInternalServerError().WithMessage("database error: " + err.Error())
	}

	created, err := s.repo.GetByID(ctx, c.CustomerID)
	if err != nil {
		if sqlerr.IsNoRows(err) {
			return nil, errs.NewInternalServerError().WithMessage("failed to create customer")
		}
		return nil, errs.NewInternalServerError().WithMessage("database error: " + err.Error())
	}

	return created, nil
}

// Get returns the customer or a not-found error that renders as 404.
func (s *CustomerService) Get(ctx context.Context, customerID string) (*model.Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

func (s *CustomerService) List(ctx context.Context) ([]model.Customer, error) {
	return s.repo.ListAll(ctx)
}

// Update overwrites the non-key fields of c and returns the row as stored.
// No matching row is a not-found error that renders as 404.
func (s *CustomerService) Update(ctx context.Context, c model.Customer) (*model.Customer, error) {
	n, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, sqlerr.NoRows(repository.CustomersTable.Name)
	}

	return s.repo.GetByID(ctx, c.CustomerID)
}

func (s *CustomerService) Delete(ctx context.Context, customerID string) error {
	return s.repo.Delete(ctx, customerID)
}
