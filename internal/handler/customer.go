package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/customer-api/internal/middleware"
	"github.com/deppfellow/customer-api/internal/model"
	"github.com/deppfellow/customer-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	indexMessage = "Customer API top page!"

	listErrorDetail = "An exception occurred during database operation."
)

// CustomerService is the business logic the customer endpoints call.
type CustomerService interface {
	Create(ctx context.Context, c model.Customer) (*model.Customer, error)
	Get(ctx context.Context, customerID string) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Update(ctx context.Context, c model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, customerID string) error
}

// Fetcher returns the demo API payload relayed by /fetchtest.
type Fetcher interface {
	Fetch(ctx context.Context) (json.RawMessage, error)
}

// ListErrorResponse is the 200 body /allcustomers sends when the query
// fails. Existing clients parse this shape instead of an error status.
type ListErrorResponse struct {
	ErrorDetail      string `json:"error_detail"`
	ExceptionType    string `json:"exception_type"`
	ExceptionMessage string `json:"exception_message"`
}

type CustomerHandler struct {
	Handler
	customers CustomerService
	upstream  Fetcher
}

func NewCustomerHandler(s *server.Server, customers CustomerService, upstream Fetcher) *CustomerHandler {
	return &CustomerHandler{
		Handler:   NewHandler(s),
		customers: customers,
		upstream:  upstream,
	}
}

func (h *CustomerHandler) Index(c echo.Context, _ *model.EmptyRequest) (model.MessageResponse, error) {
	return model.MessageResponse{Message: indexMessage}, nil
}

func (h *CustomerHandler) CreateCustomer(c echo.Context, req *model.CustomerRequest) (*model.Customer, error) {
	return h.customers.Create(c.Request().Context(), req.Customer())
}

func (h *CustomerHandler) GetCustomer(c echo.Context, req *model.CustomerIDQuery) (*model.Customer, error) {
	return h.customers.Get(c.Request().Context(), req.CustomerID)
}

// ListCustomers answers 200 on failure too, with a ListErrorResponse body.
func (h *CustomerHandler) ListCustomers(c echo.Context, _ *model.EmptyRequest) (any, error) {
	customers, err := h.customers.List(c.Request().Context())
	if err != nil {
		middleware.GetLogger(c).Error().Err(err).Msg("failed to list customers")
		if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
		}

		return ListErrorResponse{
			ErrorDetail:      listErrorDetail,
			ExceptionType:    fmt.Sprintf("%T", err),
			ExceptionMessage: err.Error(),
		}, nil
	}

	return customers, nil
}

func (h *CustomerHandler) UpdateCustomer(c echo.Context, req *model.CustomerRequest) (*model.Customer, error) {
	return h.customers.Update(c.Request().Context(), req.Customer())
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context, req *model.CustomerIDQuery) (model.DeleteCustomerResponse, error) {
	if err := h.customers.Delete(c.Request().Context(), req.CustomerID); err != nil {
		return model.DeleteCustomerResponse{}, err
	}

	return model.DeleteCustomerResponse{CustomerID: req.CustomerID, Status: "deleted"}, nil
}

// FetchTest relays the demo API response body unchanged.
func (h *CustomerHandler) FetchTest(c echo.Context, _ *model.EmptyRequest) (json.RawMessage, error) {
	return h.upstream.Fetch(c.Request().Context())
}
