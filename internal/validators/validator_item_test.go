// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-home-inventory/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ptr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// TestItemValidator_Dispatch
// ---------------------------------------------------------------------------

func TestItemValidator_Dispatch(t *testing.T) {
	v := NewItemValidator(1024)
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	})

	t.Run("pointer create", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, &models.ItemCreate{Name: "Drill", Room: "Garage"}))
	})

	t.Run("unknown field", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, models.ItemCreate{Name: "Drill", Room: "Garage"}, "colour"), ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// ItemCreate / ItemUpdate
// ---------------------------------------------------------------------------

func TestItemValidator_Create(t *testing.T) {
	v := NewItemValidator(0)
	ctx := context.Background()

	tests := []struct {
		name    string
		item    models.ItemCreate
		wantErr error
	}{
		{"valid", models.ItemCreate{Name: "Drill", Room: "Garage"}, nil},
		{"blank name", models.ItemCreate{Name: "   ", Room: "Garage"}, ErrBlankName},
		{"empty room", models.ItemCreate{Name: "Drill"}, ErrBlankRoom},
		{"optional fields ignored", models.ItemCreate{Name: "Drill", Room: "Garage", Notes: ptr("")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.item)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestItemValidator_Update(t *testing.T) {
	v := NewItemValidator(0)
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ItemUpdate{}))
	assert.NoError(t, v.Validate(ctx, models.ItemUpdate{Notes: ptr("")}))
	assert.NoError(t, v.Validate(ctx, models.ItemUpdate{Name: ptr("Saw"), Room: ptr("Shed")}))
	assert.ErrorIs(t, v.Validate(ctx, models.ItemUpdate{Name: ptr(" ")}), ErrBlankName)
	assert.ErrorIs(t, v.Validate(ctx, &models.ItemUpdate{Room: ptr("")}), ErrBlankRoom)
}

// ---------------------------------------------------------------------------
// PageRequest / SearchRequest
// ---------------------------------------------------------------------------

func TestItemValidator_Page(t *testing.T) {
	v := NewItemValidator(0)
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.PageRequest{Offset: 0, Limit: 0}))
	assert.NoError(t, v.Validate(ctx, models.PageRequest{Offset: 50, Limit: MaxPageLimit}))
	assert.ErrorIs(t, v.Validate(ctx, models.PageRequest{Offset: -1, Limit: 10}), ErrNegativeOffset)
	assert.ErrorIs(t, v.Validate(ctx, models.PageRequest{Limit: -1}), ErrInvalidLimit)
	assert.ErrorIs(t, v.Validate(ctx, models.PageRequest{Limit: MaxPageLimit + 1}), ErrInvalidLimit)
}

func TestItemValidator_Search(t *testing.T) {
	v := NewItemValidator(0)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.SearchRequest
		wantErr error
	}{
		{"text", models.SearchRequest{Mode: models.SearchModeText, Term: "drill"}, nil},
		{"image ignores term", models.SearchRequest{Mode: models.SearchModeImage}, nil},
		{"blank text term", models.SearchRequest{Mode: models.SearchModeText, Term: "  "}, ErrBlankSearchTerm},
		{"unknown mode", models.SearchRequest{Mode: "fuzzy", Term: "drill"}, ErrInvalidMode},
		{"empty mode", models.SearchRequest{Term: "drill"}, ErrInvalidMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// ImageUpload
// ---------------------------------------------------------------------------

func TestItemValidator_Image(t *testing.T) {
	ctx := context.Background()

	limited := NewItemValidator(4)
	assert.NoError(t, limited.Validate(ctx, models.ImageUpload{Data: []byte("1234")}))
	assert.ErrorIs(t, limited.Validate(ctx, models.ImageUpload{Data: []byte("12345")}), ErrImageTooLarge)
	assert.ErrorIs(t, limited.Validate(ctx, models.ImageUpload{}), ErrEmptyImage)

	unlimited := NewItemValidator(0)
	assert.NoError(t, unlimited.Validate(ctx, &models.ImageUpload{Data: make([]byte, 1<<20)}))
}
