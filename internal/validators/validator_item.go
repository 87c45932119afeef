package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-home-inventory/models"
)

// MaxPageLimit is the largest page an item listing may return.
const MaxPageLimit = 100

// Field name constants used to restrict item validation to a subset of fields.
const (
	// FieldName targets the required item name.
	FieldName = "name"

	// FieldRoom targets the required room label.
	FieldRoom = "room"

	// FieldOffset targets the start of a page window.
	FieldOffset = "offset"

	// FieldLimit targets the size of a page window.
	FieldLimit = "limit"

	// FieldMode targets the search mode.
	FieldMode = "mode"

	// FieldTerm targets the search term. It is only checked in text mode.
	FieldTerm = "term"

	// FieldImageData targets the bytes of an uploaded image.
	FieldImageData = "image_data"
)

// ItemValidator implements [Validator] for the inventory payloads:
// ItemCreate, ItemUpdate, PageRequest, SearchRequest and ImageUpload.
type ItemValidator struct {
	maxUploadBytes int64
}

// NewItemValidator constructs an [ItemValidator]. Images larger than
// maxUploadBytes are rejected; zero or less disables the size check.
func NewItemValidator(maxUploadBytes int64) Validator {
	return &ItemValidator{maxUploadBytes: maxUploadBytes}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted. Returns ErrUnsupportedType for anything else.
func (v *ItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ItemCreate:
		return v.validateCreate(value, fields...)
	case *models.ItemCreate:
		return v.validateCreate(*value, fields...)

	case models.ItemUpdate:
		return v.validateUpdate(value, fields...)
	case *models.ItemUpdate:
		return v.validateUpdate(*value, fields...)

	case models.PageRequest:
		return v.validatePage(value, fields...)
	case *models.PageRequest:
		return v.validatePage(*value, fields...)

	case models.SearchRequest:
		return v.validateSearch(value, fields...)
	case *models.SearchRequest:
		return v.validateSearch(*value, fields...)

	case models.ImageUpload:
		return v.validateImage(value, fields...)
	case *models.ImageUpload:
		return v.validateImage(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ItemValidator) validateCreate(item models.ItemCreate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldRoom}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if isBlank(item.Name) {
				return ErrBlankName
			}
		case FieldRoom:
			if isBlank(item.Room) {
				return ErrBlankRoom
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUpdate only checks fields the update carries: a nil field is
// left untouched, a present one may not blank out a required value.
func (v *ItemValidator) validateUpdate(update models.ItemUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldRoom}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if update.Name != nil && isBlank(*update.Name) {
				return ErrBlankName
			}
		case FieldRoom:
			if update.Room != nil && isBlank(*update.Room) {
				return ErrBlankRoom
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ItemValidator) validatePage(page models.PageRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOffset, FieldLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldOffset:
			if page.Offset < 0 {
				return ErrNegativeOffset
			}
		case FieldLimit:
			if page.Limit < 0 || page.Limit > MaxPageLimit {
				return ErrInvalidLimit
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ItemValidator) validateSearch(search models.SearchRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMode, FieldTerm}
	}

	for _, f := range fields {
		switch f {
		case FieldMode:
			if search.Mode != models.SearchModeText && search.Mode != models.SearchModeImage {
				return ErrInvalidMode
			}
		case FieldTerm:
			if search.Mode == models.SearchModeText && isBlank(search.Term) {
				return ErrBlankSearchTerm
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ItemValidator) validateImage(upload models.ImageUpload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldImageData}
	}

	for _, f := range fields {
		switch f {
		case FieldImageData:
			if len(upload.Data) == 0 {
				return ErrEmptyImage
			}
			if v.maxUploadBytes > 0 && int64(len(upload.Data)) > v.maxUploadBytes {
				return ErrImageTooLarge
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
