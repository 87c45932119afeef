// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-home-inventory/internal/service"
)

// Request errors detected by the handlers before a service is called.
// Each wraps service.ErrValidation so it is answered with 400.
var (
	// ErrInvalidJSON is returned when the request body is not a JSON
	// document of the expected shape.
	ErrInvalidJSON = fmt.Errorf("%w: invalid JSON body", service.ErrValidation)

	// ErrInvalidItemID is returned when the {itemID} path segment is not
	// a positive integer.
	ErrInvalidItemID = fmt.Errorf("%w: item id must be a positive integer", service.ErrValidation)

	// ErrInvalidQueryParam is returned when skip or limit are not integers.
	ErrInvalidQueryParam = fmt.Errorf("%w: invalid query parameter", service.ErrValidation)

	// ErrMissingFile is returned when an upload carries no "file" part.
	ErrMissingFile = fmt.Errorf("%w: multipart field `file` is required", service.ErrValidation)
)

// errNoPrincipal means a protected handler ran without the auth
// middleware. It is a wiring bug and answered with 500.
var errNoPrincipal = errors.New("no principal in request context")
