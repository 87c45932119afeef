package http

import (
	"net/http"

	"github.com/MKhiriev/go-home-inventory/internal/utils"
	"github.com/MKhiriev/go-home-inventory/models"
)

// search answers GET /search/?q=<term>&mode=text|image. The mode defaults
// to text.
func (h *Handler) search(w http.ResponseWriter, r *http.Request, ownerID int64) {
	query := r.URL.Query()

	req := models.SearchRequest{
		Term: query.Get("q"),
		Mode: models.SearchModeText,
	}
	if mode := query.Get("mode"); mode != "" {
		req.Mode = models.SearchMode(mode)
	}

	items, err := h.services.ItemService.Search(r.Context(), ownerID, req)
	writeItems(w, r, items, err)
}

func (h *Handler) gallery(w http.ResponseWriter, r *http.Request, ownerID int64) {
	items, err := h.services.ItemService.Gallery(r.Context(), ownerID)
	writeItems(w, r, items, err)
}

func (h *Handler) roomCounts(w http.ResponseWriter, r *http.Request, ownerID int64) {
	counts, err := h.services.ItemService.RoomCounts(r.Context(), ownerID)
	writeCounts(w, r, counts, err)
}

func (h *Handler) categoryCounts(w http.ResponseWriter, r *http.Request, ownerID int64) {
	counts, err := h.services.ItemService.CategoryCounts(r.Context(), ownerID)
	writeCounts(w, r, counts, err)
}

func writeCounts(w http.ResponseWriter, r *http.Request, counts []models.NamedCount, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	if counts == nil {
		counts = []models.NamedCount{}
	}
	utils.WriteJSON(w, counts, http.StatusOK)
}
