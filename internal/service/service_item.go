// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-home-inventory/internal/adapter"
	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/store"
	"github.com/MKhiriev/go-home-inventory/internal/validators"
	"github.com/MKhiriev/go-home-inventory/models"
)

// DefaultPageLimit is used when a listing does not ask for a page size.
const DefaultPageLimit = validators.MaxPageLimit

// defaultImageName is shown for an image uploaded without any name.
const defaultImageName = "image"

// itemService is the concrete implementation of [ItemService].
//
// It validates input, then runs every call against the repository with the
// caller's account id as owner, so a request can only see and change the
// caller's own items.
type itemService struct {
	itemRepository store.ItemRepository
	blobStore      adapter.BlobStore
	validator      validators.Validator
	logger         *logger.Logger
}

// NewItemService constructs an [ItemService]. Image uploads larger than
// cfg.MaxUploadBytes are rejected before they reach the blob store.
func NewItemService(itemRepository store.ItemRepository, blobStore adapter.BlobStore, cfg config.Files, logger *logger.Logger) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		blobStore:      blobStore,
		validator:      validators.NewItemValidator(cfg.MaxUploadBytes),
		logger:         logger,
	}
}

// Create stores a new item owned by ownerID. Name and room are required.
func (s *itemService) Create(ctx context.Context, ownerID int64, item models.ItemCreate) (models.Item, error) {
	if err := s.validator.Validate(ctx, item); err != nil {
		return models.Item{}, validationError(err)
	}

	created, err := s.itemRepository.Create(ctx, ownerID, item)
	if err != nil {
		return models.Item{}, mapStoreError(err)
	}

	logger.FromContext(ctx).Debug().Int64("owner_id", ownerID).Int64("item_id", created.ID).Msg("item created")
	return created, nil
}

// Get returns ErrItemNotFound for missing and foreign items alike.
func (s *itemService) Get(ctx context.Context, ownerID, itemID int64) (models.Item, error) {
	item, err := s.itemRepository.Get(ctx, ownerID, itemID)
	if err != nil {
		return models.Item{}, mapStoreError(err)
	}
	return item, nil
}

// List returns a page of the owner's items ordered by id. A zero limit
// means [DefaultPageLimit]; limits above it are a validation error.
func (s *itemService) List(ctx context.Context, ownerID int64, page models.PageRequest) ([]models.Item, error) {
	if err := s.validator.Validate(ctx, page); err != nil {
		return nil, validationError(err)
	}
	if page.Limit == 0 {
		page.Limit = DefaultPageLimit
	}

	items, err := s.itemRepository.List(ctx, ownerID, page.Offset, page.Limit)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return items, nil
}

// ListByRoom returns the owner's items in room.
func (s *itemService) ListByRoom(ctx context.Context, ownerID int64, room string) ([]models.Item, error) {
	items, err := s.itemRepository.ListByRoom(ctx, ownerID, room)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return items, nil
}

// ListByCategory returns the owner's items in category.
func (s *itemService) ListByCategory(ctx context.Context, ownerID int64, category string) ([]models.Item, error) {
	items, err := s.itemRepository.ListByCategory(ctx, ownerID, category)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return items, nil
}

// Search runs a text search on the trimmed term, or lists the gallery in
// image mode. The term is ignored in image mode.
func (s *itemService) Search(ctx context.Context, ownerID int64, req models.SearchRequest) ([]models.Item, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return nil, validationError(err)
	}

	if req.Mode == models.SearchModeImage {
		return s.Gallery(ctx, ownerID)
	}

	items, err := s.itemRepository.SearchText(ctx, ownerID, strings.TrimSpace(req.Term))
	if err != nil {
		return nil, mapStoreError(err)
	}
	return items, nil
}

// Gallery returns the owner's items that have an image attached.
func (s *itemService) Gallery(ctx context.Context, ownerID int64) ([]models.Item, error) {
	items, err := s.itemRepository.ListWithImages(ctx, ownerID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return items, nil
}

// Update applies the fields present in update after confirming the item
// belongs to ownerID. An update without fields returns the item unchanged.
// Concurrent updates are last-write-wins.
func (s *itemService) Update(ctx context.Context, ownerID, itemID int64, update models.ItemUpdate) (models.Item, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Item{}, validationError(err)
	}

	current, err := s.itemRepository.Get(ctx, ownerID, itemID)
	if err != nil {
		return models.Item{}, mapStoreError(err)
	}
	if update.IsEmpty() {
		return current, nil
	}

	updated, err := s.itemRepository.Update(ctx, ownerID, itemID, update)
	if err != nil {
		return models.Item{}, mapStoreError(err)
	}
	return updated, nil
}

// Delete removes an owned item and returns it as it was.
func (s *itemService) Delete(ctx context.Context, ownerID, itemID int64) (models.Item, error) {
	deleted, err := s.itemRepository.Delete(ctx, ownerID, itemID)
	if err != nil {
		return models.Item{}, mapStoreError(err)
	}

	logger.FromContext(ctx).Debug().Int64("owner_id", ownerID).Int64("item_id", itemID).Msg("item deleted")
	return deleted, nil
}

// UploadImage attaches an image to an owned item.
//
// Ownership is confirmed before anything is written, so a foreign item id
// never leaves an orphan object in the blob store. The display name falls
// back to the file name and then to "image".
func (s *itemService) UploadImage(ctx context.Context, ownerID, itemID int64, upload models.ImageUpload) (models.Item, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, upload); err != nil {
		return models.Item{}, validationError(err)
	}

	if _, err := s.itemRepository.Get(ctx, ownerID, itemID); err != nil {
		return models.Item{}, mapStoreError(err)
	}

	locator, err := s.blobStore.StoreBlob(ctx, upload.Data, upload.FileName, upload.ContentType)
	if err != nil {
		log.Err(err).Str("func", "*itemService.UploadImage").Int64("owner_id", ownerID).Int64("item_id", itemID).Msg("error storing image")
		return models.Item{}, mapBlobError(err)
	}

	item, err := s.itemRepository.AttachImage(ctx, ownerID, itemID, imageDisplayName(upload), locator)
	if err != nil {
		return models.Item{}, mapStoreError(err)
	}
	return item, nil
}

// RoomCounts returns the number of the owner's items per room.
func (s *itemService) RoomCounts(ctx context.Context, ownerID int64) ([]models.NamedCount, error) {
	counts, err := s.itemRepository.RoomCounts(ctx, ownerID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return counts, nil
}

// CategoryCounts returns the number of the owner's items per category.
func (s *itemService) CategoryCounts(ctx context.Context, ownerID int64) ([]models.NamedCount, error) {
	counts, err := s.itemRepository.CategoryCounts(ctx, ownerID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return counts, nil
}

func imageDisplayName(upload models.ImageUpload) string {
	if name := strings.TrimSpace(upload.DisplayName); name != "" {
		return name
	}
	if name := strings.TrimSpace(upload.FileName); name != "" {
		return name
	}
	return defaultImageName
}
