package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/service"
	"github.com/MKhiriev/go-home-inventory/internal/utils"
	"github.com/MKhiriev/go-home-inventory/models"
)

// Fixed response details. Unauthorized answers never say why.
const (
	detailUnauthorized   = "Could not validate credentials"
	detailBadCredentials = "Incorrect email or password"
	detailUnavailable    = "Service temporarily unavailable"
	detailNotFound       = "Not Found"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:   http.StatusBadRequest,
	service.ErrUnauthorized: http.StatusUnauthorized,
	service.ErrNotFound:     http.StatusNotFound,
	service.ErrConflict:     http.StatusConflict,
	service.ErrUnavailable:  http.StatusServiceUnavailable,
}

// statusPriority fixes the lookup order: an error wrapping both
// ErrUnavailable and another sentinel is an outage first.
var statusPriority = []error{
	service.ErrUnavailable,
	service.ErrUnauthorized,
	service.ErrValidation,
	service.ErrNotFound,
	service.ErrConflict,
}

func statusFromError(err error) int {
	status, _ := classify(err)
	return status
}

func classify(err error) (int, error) {
	for _, target := range statusPriority {
		if errors.Is(err, target) {
			return errorStatusMap[target], target
		}
	}
	return http.StatusInternalServerError, nil
}

// detailFromError returns the message shown to the client for err.
// Validation, not-found and conflict messages come from sentinel errors
// and are safe to show without the taxonomy prefix; anything else gets a
// fixed text.
func detailFromError(err error) string {
	status, target := classify(err)

	switch status {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusConflict:
		return strings.TrimPrefix(err.Error(), target.Error()+": ")
	case http.StatusUnauthorized:
		if errors.Is(err, service.ErrInvalidCredentials) {
			return detailBadCredentials
		}
		return detailUnauthorized
	case http.StatusServiceUnavailable:
		return detailUnavailable
	default:
		return http.StatusText(http.StatusInternalServerError)
	}
}

// writeError logs err and answers with the mapped status and a JSON detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeDetail(w, status, detailFromError(err))
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	utils.WriteJSON(w, models.ErrorResponse{Detail: detail}, status)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeDetail(w, http.StatusNotFound, detailNotFound)
}
