package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-home-inventory/internal/adapter"
	"github.com/MKhiriev/go-home-inventory/internal/store"
	"github.com/MKhiriev/go-home-inventory/internal/validators"
)

// mapStoreError re-signals a repository error in the service taxonomy.
// Errors without a meaning of their own are returned wrapped so the
// transport answers 500.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrItemNotFound):
		return ErrItemNotFound
	case errors.Is(err, store.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return ErrEmailTaken
	case errors.Is(err, store.ErrStoreUnavailable):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return fmt.Errorf("store error: %w", err)
	}
}

// mapBlobError re-signals a blob store error. An unreachable backend is an
// outage; a refused object is a server-side failure.
func mapBlobError(err error) error {
	if errors.Is(err, adapter.ErrBlobUnavailable) {
		return fmt.Errorf("%w: %w: %w", ErrUnavailable, ErrImageStoreFailed, err)
	}
	return fmt.Errorf("%w: %w", ErrImageStoreFailed, err)
}

// validationError wraps a validator error with ErrValidation.
func validationError(err error) error {
	if err == nil || errors.Is(err, validators.ErrUnsupportedType) || errors.Is(err, validators.ErrUnknownField) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
