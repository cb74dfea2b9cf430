// Package model defines the records the service stores and the
// request payloads that create or address them.
package model

import (
	"strings"

	"github.com/deppfellow/customer-api/internal/validation"
)

// Customer is a row of the customers table.
type Customer struct {
	CustomerID   string `db:"customer_id" json:"customer_id"`
	CustomerName string `db:"customer_name" json:"customer_name"`
	Age          int    `db:"age" json:"age"`
	Gender       string `db:"gender" json:"gender"`
}

// CustomerRequest is the JSON body of POST and PUT /customers.
//
// Every field must be present and non-null. The pointers tell a missing
// field apart from a supplied zero value such as "" or 0.
type CustomerRequest struct {
	CustomerID   string  `json:"customer_id" validate:"required,customerid"`
	CustomerName *string `json:"customer_name" validate:"required"`
	Age          *int    `json:"age" validate:"required"`
	Gender       *string `json:"gender" validate:"required"`
}

// Validate trims the id in place before checking it.
func (r *CustomerRequest) Validate() error {
	r.CustomerID = strings.TrimSpace(r.CustomerID)
	return validation.Struct(r)
}

// Customer converts a validated request into the stored record.
func (r *CustomerRequest) Customer() Customer {
	c := Customer{CustomerID: r.CustomerID}
	if r.CustomerName != nil {
		c.CustomerName = *r.CustomerName
	}
	if r.Age != nil {
		c.Age = *r.Age
	}
	if r.Gender != nil {
		c.Gender = *r.Gender
	}
	return c
}

// CustomerIDQuery addresses a single customer through ?customer_id=.
type CustomerIDQuery struct {
	CustomerID string `query:"customer_id" validate:"required"`
}

func (q *CustomerIDQuery) Validate() error {
	return validation.Struct(q)
}

// EmptyRequest is used by endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// DeleteCustomerResponse acknowledges a removed customer.
type DeleteCustomerResponse struct {
	CustomerID string `json:"customer_id"`
	Status     string `json:"status"`
}

// MessageResponse carries a single informational message.
type MessageResponse struct {
	Message string `json:"message"`
}
