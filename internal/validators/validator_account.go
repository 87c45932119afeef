package validators

import (
	"context"
	"net/mail"

	"github.com/MKhiriev/go-home-inventory/models"
)

// Field name constants for account payloads.
const (
	// FieldEmail targets the login email. It must be a bare address.
	FieldEmail = "email"

	// FieldPassword targets the plain-text password. Only presence is checked
	// here; length rules belong to the password hasher.
	FieldPassword = "password"

	// FieldAccountID targets a persisted account identifier.
	FieldAccountID = "account_id"
)

// AccountValidator implements [Validator] for AccountCreate, Credentials
// and Account.
type AccountValidator struct{}

// NewAccountValidator constructs an [AccountValidator].
func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate dispatches on the dynamic type of obj.
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AccountCreate:
		return v.validate(value.Email, value.Password, 0, defaultFields(fields, FieldEmail, FieldPassword))
	case *models.AccountCreate:
		return v.validate(value.Email, value.Password, 0, defaultFields(fields, FieldEmail, FieldPassword))

	case models.Credentials:
		return v.validate(value.Email, value.Password, 0, defaultFields(fields, FieldEmail, FieldPassword))
	case *models.Credentials:
		return v.validate(value.Email, value.Password, 0, defaultFields(fields, FieldEmail, FieldPassword))

	case models.Account:
		return v.validate(value.Email, "", value.ID, defaultFields(fields, FieldAccountID, FieldEmail))
	case *models.Account:
		return v.validate(value.Email, "", value.ID, defaultFields(fields, FieldAccountID, FieldEmail))

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validate(email, password string, accountID int64, fields []string) error {
	for _, f := range fields {
		switch f {
		case FieldEmail:
			if err := ValidateEmail(email); err != nil {
				return err
			}
		case FieldPassword:
			if isBlank(password) {
				return ErrBlankPassword
			}
		case FieldAccountID:
			if accountID <= 0 {
				return ErrInvalidAccountID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidateEmail accepts a bare RFC 5322 address such as "a@example.com".
// Display-name forms ("Alice <a@example.com>") are rejected.
func ValidateEmail(email string) error {
	if isBlank(email) {
		return ErrBlankEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	return nil
}

func defaultFields(fields []string, defaults ...string) []string {
	if len(fields) == 0 {
		return defaults
	}
	return fields
}
