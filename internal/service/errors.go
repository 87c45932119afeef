package service

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every error a service returns wraps exactly one of these,
// and the transport layer maps them to status codes.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("service unavailable")
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: incorrect email or password", ErrUnauthorized)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrAccountNotFound    = fmt.Errorf("%w: account not found", ErrNotFound)
	ErrItemNotFound       = fmt.Errorf("%w: item not found", ErrNotFound)

	// ErrTokenRejected is returned by TokenService.Verify together with one
	// of the reason errors below.
	ErrTokenRejected = fmt.Errorf("%w: token rejected", ErrUnauthorized)

	ErrTokenMalformed        = errors.New("malformed")
	ErrTokenSignatureInvalid = errors.New("signature_invalid")
	ErrTokenExpired          = errors.New("expired")
	ErrTokenMissingSubject   = errors.New("missing_subject")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrImageStoreFailed      = errors.New("image could not be stored")
)
