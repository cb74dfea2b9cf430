package model

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantID  string
		wantTag string
	}{
		{name: "alphanumeric", id: "abc123", wantID: "abc123"},
		{name: "hyphen and underscore", id: "abc-1_x", wantID: "abc-1_x"},
		{name: "only separators", id: "-_-", wantID: "-_-"},
		{name: "trimmed", id: "  abc-1\t", wantID: "abc-1"},
		{name: "empty", id: "", wantTag: "required"},
		{name: "whitespace only", id: "   ", wantTag: "required"},
		{name: "inner space", id: "abc 1", wantTag: "customerid"},
		{name: "punctuation", id: "abc!", wantTag: "customerid"},
		{name: "non ascii letter", id: "顧客1", wantTag: "customerid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(tt.id, "", 0, "")
			err := req.Validate()

			if tt.wantTag == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, req.CustomerID)
				return
			}

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, "customer_id", verrs[0].Field())
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
		})
	}
}

func newRequest(id, name string, age int, gender string) *CustomerRequest {
	return &CustomerRequest{CustomerID: id, CustomerName: &name, Age: &age, Gender: &gender}
}

func TestCustomerRequest_OtherFieldsUnconstrained(t *testing.T) {
	req := newRequest("c1", "", -4, "")
	require.NoError(t, req.Validate())

	assert.Equal(t, Customer{CustomerID: "c1", Age: -4}, req.Customer())
}

func TestCustomerRequest_MissingFields(t *testing.T) {
	name := "Alice"
	req := &CustomerRequest{CustomerID: "c1", CustomerName: &name}

	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)

	var fields []string
	for _, fe := range verrs {
		assert.Equal(t, "required", fe.Tag())
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"age", "gender"}, fields)
}

func TestCustomerIDQuery_Validate(t *testing.T) {
	assert.Error(t, (&CustomerIDQuery{}).Validate())
	assert.NoError(t, (&CustomerIDQuery{CustomerID: "any thing!"}).Validate())
}
