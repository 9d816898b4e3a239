package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerInfo_Validate(t *testing.T) {
	tests := []struct {
		name       string
		info       CustomerInfo
		wantFields []string
	}{
		{
			name: "all fields present",
			info: CustomerInfo{Name: "John Doe", Email: "john@example.com", Phone: "+263 77 123 4567"},
		},
		{
			name: "format is not checked",
			info: CustomerInfo{Name: "J", Email: "not-an-email", Phone: "call me"},
		},
		{
			name:       "missing email",
			info:       CustomerInfo{Name: "John Doe", Phone: "0771234567"},
			wantFields: []string{"email"},
		},
		{
			name:       "whitespace only counts as missing",
			info:       CustomerInfo{Name: "  ", Email: "\t", Phone: " "},
			wantFields: []string{"name", "email", "phone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var errs ValidationErrors
			require.True(t, errors.As(err, &errs))
			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.NotEmpty(t, errs.Message(field), "field %s", field)
			}
		})
	}
}

func TestCustomerInfo_Trimmed(t *testing.T) {
	info := CustomerInfo{Name: " Jane ", Email: " jane@example.com", Phone: "077 "}
	assert.Equal(t, CustomerInfo{Name: "Jane", Email: "jane@example.com", Phone: "077"}, info.Trimmed())
}

func TestParsePaymentMethod(t *testing.T) {
	method, err := ParsePaymentMethod("card")
	require.NoError(t, err)
	assert.Equal(t, PaymentCard, method)

	method, err = ParsePaymentMethod(" Coupon ")
	require.NoError(t, err)
	assert.Equal(t, PaymentCoupon, method)

	_, err = ParsePaymentMethod("cheque")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.True(t, PaymentMobile.IsValid())
	assert.False(t, PaymentMethod("Barter").IsValid())
}
