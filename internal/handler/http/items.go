// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/service"
	"github.com/MKhiriev/go-home-inventory/internal/utils"
	"github.com/MKhiriev/go-home-inventory/internal/validators"
	"github.com/MKhiriev/go-home-inventory/models"
)

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request, ownerID int64) {
	var req models.ItemCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	item, err := h.services.ItemService.Create(r.Context(), ownerID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, item, http.StatusOK)
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request, ownerID int64) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.services.ItemService.List(r.Context(), ownerID, page)
	writeItems(w, r, items, err)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request, ownerID int64) {
	itemID, err := itemIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.services.ItemService.Get(r.Context(), ownerID, itemID)
	writeItem(w, r, item, err)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request, ownerID int64) {
	itemID, err := itemIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var update models.ItemUpdate
	if err = json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	item, err := h.services.ItemService.Update(r.Context(), ownerID, itemID, update)
	writeItem(w, r, item, err)
}

func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request, ownerID int64) {
	itemID, err := itemIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = h.services.ItemService.Delete(r.Context(), ownerID, itemID); err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, models.MessageResponse{Message: "Item deleted"}, http.StatusOK)
}

// uploadImage reads the multipart "file" part and the optional
// "image_name" field and attaches the image to the item.
func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request, ownerID int64) {
	log := logger.FromRequest(r)

	itemID, err := itemIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.files.MaxUploadBytes+multipartOverheadBytes)
	if err = r.ParseMultipartForm(multipartOverheadBytes); err != nil {
		log.Err(err).Msg("error parsing multipart form")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrImageTooLarge))
			return
		}
		writeError(w, r, ErrMissingFile)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, ErrMissingFile)
		return
	}
	defer file.Close()

	// one byte over the limit is enough for the validator to reject it
	data, err := io.ReadAll(io.LimitReader(file, h.files.MaxUploadBytes+1))
	if err != nil {
		writeError(w, r, fmt.Errorf("error reading uploaded file: %w", err))
		return
	}

	upload := models.ImageUpload{
		DisplayName: r.FormValue("image_name"),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	item, err := h.services.ItemService.UploadImage(r.Context(), ownerID, itemID, upload)
	writeItem(w, r, item, err)
}

func (h *Handler) itemsByRoom(w http.ResponseWriter, r *http.Request, ownerID int64) {
	items, err := h.services.ItemService.ListByRoom(r.Context(), ownerID, chi.URLParam(r, "room"))
	writeItems(w, r, items, err)
}

func (h *Handler) itemsByCategory(w http.ResponseWriter, r *http.Request, ownerID int64) {
	items, err := h.services.ItemService.ListByCategory(r.Context(), ownerID, chi.URLParam(r, "category"))
	writeItems(w, r, items, err)
}

func writeItem(w http.ResponseWriter, r *http.Request, item models.Item, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, item, http.StatusOK)
}

// writeItems answers with a JSON array; an empty result is [] rather than null.
func writeItems(w http.ResponseWriter, r *http.Request, items []models.Item, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	utils.WriteJSON(w, items, http.StatusOK)
}

func itemIDFromPath(r *http.Request) (int64, error) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil || itemID <= 0 {
		return 0, ErrInvalidItemID
	}
	return itemID, nil
}

// pageFromQuery reads the skip and limit query parameters. Absent values
// are zero; the service turns a zero limit into the default page size.
func pageFromQuery(r *http.Request) (models.PageRequest, error) {
	var page models.PageRequest
	query := r.URL.Query()

	if skip := query.Get("skip"); skip != "" {
		offset, err := strconv.Atoi(skip)
		if err != nil {
			return page, fmt.Errorf("%w: skip", ErrInvalidQueryParam)
		}
		page.Offset = offset
	}

	if rawLimit := query.Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			return page, fmt.Errorf("%w: limit", ErrInvalidQueryParam)
		}
		page.Limit = limit
	}

	return page, nil
}
