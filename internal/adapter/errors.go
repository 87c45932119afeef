package adapter

import "errors"

var (
	ErrBlobUnavailable = errors.New("blob store unavailable")
	ErrBlobRejected    = errors.New("blob store rejected the object")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("blob store unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
)
