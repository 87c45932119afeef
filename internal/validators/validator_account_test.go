package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-home-inventory/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr error
	}{
		{"a@example.com", nil},
		{"first.last+tag@sub.example.org", nil},
		{"", ErrBlankEmail},
		{"   ", ErrBlankEmail},
		{"not-an-email", ErrInvalidEmail},
		{"a@", ErrInvalidEmail},
		{"Alice <a@example.com>", ErrInvalidEmail},
		{" a@example.com", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccountValidator_Validate(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	require.NoError(t, v.Validate(ctx, models.AccountCreate{Email: "a@x.com", Password: "pw"}))
	require.NoError(t, v.Validate(ctx, &models.Credentials{Email: "a@x.com", Password: "pw"}))
	require.NoError(t, v.Validate(ctx, models.Account{ID: 1, Email: "a@x.com"}))

	assert.ErrorIs(t, v.Validate(ctx, models.AccountCreate{Email: "a@x.com", Password: " "}), ErrBlankPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.Credentials{Email: "bad", Password: "pw"}), ErrInvalidEmail)
	assert.ErrorIs(t, v.Validate(ctx, models.Account{Email: "a@x.com"}), ErrInvalidAccountID)
	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
}

func TestAccountValidator_FieldScoping(t *testing.T) {
	v := NewAccountValidator()
	ctx := context.Background()

	// password is not checked when only the email is requested
	assert.NoError(t, v.Validate(ctx, models.AccountCreate{Email: "a@x.com"}, FieldEmail))
	assert.ErrorIs(t, v.Validate(ctx, models.AccountCreate{Email: "a@x.com"}, FieldName), ErrUnknownField)
}
