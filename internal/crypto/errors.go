package crypto

import "errors"

var (
	// ErrInvalidPassword is returned by Hash for blank or oversized input.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrMalformedHash is returned when an encoded credential cannot be parsed.
	ErrMalformedHash = errors.New("malformed password hash")
)
