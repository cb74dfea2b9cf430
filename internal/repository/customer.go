package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/customer-api/internal/model"
	"github.com/deppfellow/customer-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// CustomersTable is the customers table layout.
var CustomersTable = Table{
	Name:    "customers",
	Key:     "customer_id",
	Columns: []string{"customer_id", "customer_name", "age", "gender"},
}

var customerStatements = CustomersTable.Statements()

type CustomerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetByID returns the customer with the given id.
//
// A missing row is reported as sqlerr.NoRows("customers").
func (r *CustomerRepository) GetByID(ctx context.Context, customerID string) (*model.Customer, error) {
	rows, err := r.db.Query(ctx, customerStatements.SelectByKey, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by customer_id=%s: %w", customerID, err)
	}

	customer, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Customer])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sqlerr.NoRows(CustomersTable.Name)
		}
		return nil, fmt.Errorf("failed to collect customer customer_id=%s: %w", customerID, err)
	}

	return &customer, nil
}

// ListAll returns every customer ordered by id. An empty table yields an empty slice.
func (r *CustomerRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.Query(ctx, customerStatements.SelectAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customers, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Customer])
	if err != nil {
		return nil, fmt.Errorf("failed to collect customers: %w", err)
	}

	if customers == nil {
		customers = []model.Customer{}
	}

	return customers, nil
}

// Create inserts a new customer. A duplicate id surfaces as the driver's
// unique violation.
func (r *CustomerRepository) Create(ctx context.Context, c model.Customer) error {
	_, err := r.db.Exec(ctx, customerStatements.Insert,
		c.CustomerID, c.CustomerName, c.Age, c.Gender)
	if err != nil {
		return fmt.Errorf("failed to insert customer customer_id=%s: %w", c.CustomerID, err)
	}
	return nil
}

// Update overwrites every non-key column and reports how many rows matched.
func (r *CustomerRepository) Update(ctx context.Context, c model.Customer) (int64, error) {
	tag, err := r.db.Exec(ctx, customerStatements.Update,
		c.CustomerID, c.CustomerName, c.Age, c.Gender)
	if err != nil {
		return 0, fmt.Errorf("failed to update customer customer_id=%s: %w", c.CustomerID, err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes the customer with the given id, or returns
// sqlerr.NoRows("customers") when there was none.
func (r *CustomerRepository) Delete(ctx context.Context, customerID string) error {
	tag, err := r.db.Exec(ctx, customerStatements.Delete, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer customer_id=%s: %w", customerID, err)
	}

	if tag.RowsAffected() == 0 {
		return sqlerr.NoRows(CustomersTable.Name)
	}

	return nil
}
