package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrBlankName        = errors.New("name must not be blank")
	ErrBlankRoom        = errors.New("room must not be blank")
	ErrNegativeOffset   = errors.New("offset must not be negative")
	ErrInvalidLimit     = errors.New("limit must be between 0 and the page maximum")
	ErrInvalidMode      = errors.New("search mode must be text or image")
	ErrBlankSearchTerm  = errors.New("search term must not be blank")
	ErrBlankEmail       = errors.New("email must not be blank")
	ErrInvalidEmail     = errors.New("email is not a valid address")
	ErrBlankPassword    = errors.New("password must not be blank")
	ErrEmptyImage       = errors.New("image data is empty")
	ErrImageTooLarge    = errors.New("image exceeds the upload size limit")
	ErrInvalidAccountID = errors.New("invalid account ID")
)
