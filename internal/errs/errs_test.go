package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestNewBadRequestError(t *testing.T) {
	code := "CUSTOMER_ALREADY_EXISTS"
	fields := []FieldError{{Field: "customer_id", Error: "is required"}}

	err := NewBadRequestError("duplicate", true, &code, fields)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, code, err.Code)
	assert.True(t, err.Override)
	assert.Equal(t, fields, err.Errors)
	assert.Equal(t, "duplicate", err.Error())

	assert.Equal(t, "BAD_REQUEST", NewBadRequestError("x", false, nil, nil).Code)
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Customer not found", true, nil)

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NOT_FOUND", err.Code)
}

func TestNewInternalServerError_WithMessage(t *testing.T) {
	base := NewInternalServerError()
	custom := base.WithMessage("database error: boom")

	assert.Equal(t, "Internal Server Error", base.Message)
	assert.Equal(t, "database error: boom", custom.Message)
	assert.Equal(t, base.Code, custom.Code)
	assert.Equal(t, http.StatusInternalServerError, custom.Status)
}

func TestValidationError(t *testing.T) {
	err := ValidationError(errors.New("age must be an integer"))

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed: age must be an integer", err.Message)
}

func TestHTTPErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("Customer not found", true, nil))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
}
