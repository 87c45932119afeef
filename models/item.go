// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Item is a physical object tracked in a user's inventory.
//
// Location is described by free-text labels: Room is required, the other
// labels are optional. An item may carry one image attachment made of a
// display name and a locator (URL or path) returned by the blob store.
type Item struct {
	// ID is the server-assigned identifier of the item.
	ID int64 `json:"id"`

	// OwnerID is the account that owns the item. It is stamped at creation
	// and never changes afterwards.
	OwnerID int64 `json:"-"`

	Name        string  `json:"name"`
	Category    *string `json:"category"`
	Room        string  `json:"room"`
	Cupboard    *string `json:"cupboard"`
	Shelf       *string `json:"shelf"`
	Loft        *string `json:"loft"`
	InsideItems *string `json:"inside_items"`
	Notes       *string `json:"notes"`

	// ImageName is the display name of the attached image.
	ImageName *string `json:"image_name"`

	// ImagePath is the blob locator of the attached image.
	// Items with a non-nil ImagePath make up the image gallery.
	ImagePath *string `json:"image_path"`

	CreatedAt time.Time `json:"created_at"`
}

// HasImage reports whether an image is attached to the item.
func (i Item) HasImage() bool {
	return i.ImagePath != nil
}

// ItemCreate is the payload for creating an item.
type ItemCreate struct {
	Name        string  `json:"name"`
	Category    *string `json:"category,omitempty"`
	Room        string  `json:"room"`
	Cupboard    *string `json:"cupboard,omitempty"`
	Shelf       *string `json:"shelf,omitempty"`
	Loft        *string `json:"loft,omitempty"`
	InsideItems *string `json:"inside_items,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	ImageName   *string `json:"image_name,omitempty"`
	ImagePath   *string `json:"image_path,omitempty"`
}

// ItemUpdate represents a partial update of an item.
// Only non-nil fields are applied; nil fields are left untouched.
type ItemUpdate struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Room        *string `json:"room,omitempty"`
	Cupboard    *string `json:"cupboard,omitempty"`
	Shelf       *string `json:"shelf,omitempty"`
	Loft        *string `json:"loft,omitempty"`
	InsideItems *string `json:"inside_items,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	ImageName   *string `json:"image_name,omitempty"`
	ImagePath   *string `json:"image_path,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u ItemUpdate) IsEmpty() bool {
	return u.Name == nil && u.Category == nil && u.Room == nil &&
		u.Cupboard == nil && u.Shelf == nil && u.Loft == nil &&
		u.InsideItems == nil && u.Notes == nil &&
		u.ImageName == nil && u.ImagePath == nil
}

// ImageUpload carries an uploaded image before it is handed to the blob store.
type ImageUpload struct {
	// DisplayName is the name shown for the image. When empty, FileName is used.
	DisplayName string

	// FileName is the client-side file name; its extension is preserved in
	// the stored object name.
	FileName string

	// ContentType is the MIME type reported by the client.
	ContentType string

	Data []byte
}

// NamedCount is one group of an aggregate view (rooms or categories).
type NamedCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "items"
}
