package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/customer-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestNoRows(t *testing.T) {
	err := NoRows("customers")

	assert.True(t, errors.Is(err, pgx.ErrNoRows))
	assert.True(t, IsNoRows(err))
	assert.Equal(t, "table:customers: no rows in result set", err.Error())
}

func TestErrCode(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}

	assert.Equal(t, UniqueViolation, ErrCode(unique))
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("insert: %w", unique)))
	assert.Equal(t, UniqueViolation, ErrCode(ConvertPgError(unique)))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}

func TestGenerateErrorCode(t *testing.T) {
	assert.Equal(t, "CUSTOMER_ALREADY_EXISTS", GenerateErrorCode("customers", UniqueViolation))
	assert.Equal(t, "RECORD_REQUIRED", GenerateErrorCode("", NotNullViolation))
	assert.Equal(t, "CUSTOMER_ERROR", GenerateErrorCode("customers", Other))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "tagged no rows",
			err:         NoRows("customers"),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Customer not found",
		},
		{
			name:        "bare sql no rows",
			err:         sql.ErrNoRows,
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Resource not found",
		},
		{
			name: "unique violation on named column",
			err: &pgconn.PgError{
				Code:           "23505",
				Severity:       "ERROR",
				TableName:      "customers",
				ConstraintName: "customers_email_key",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "CUSTOMER_ALREADY_EXISTS",
			wantMessage: "A Customer with this Email already exists",
		},
		{
			name: "unique violation on primary key",
			err: &pgconn.PgError{
				Code:           "23505",
				TableName:      "customers",
				ConstraintName: "customers_pkey",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "CUSTOMER_ALREADY_EXISTS",
			wantMessage: "A Customer with this identifier already exists",
		},
		{
			name: "not null violation",
			err: &pgconn.PgError{
				Code:       "23502",
				TableName:  "customers",
				ColumnName: "customer_name",
			},
			wantStatus:  http.StatusBadRequest,
			wantCode:    "CUSTOMER_REQUIRED",
			wantMessage: "The Customer Name is required",
		},
		{
			name:        "unmapped server error",
			err:         &pgconn.PgError{Code: "42P01"},
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Internal Server Error",
		},
		{
			name:        "unknown error",
			err:         errors.New("connection reset"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := asHTTPError(t, HandleError(tt.err))

			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMessage, httpErr.Message)
		})
	}
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("Customer not found", true, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_NotNullAddsFieldError(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(&pgconn.PgError{Code: "23502", ColumnName: "Gender"}))

	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "gender", httpErr.Errors[0].Field)
}
