package http

import (
	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/service"
)

// multipartOverheadBytes is allowed on top of the upload limit for the
// multipart envelope and the other form fields.
const multipartOverheadBytes = 1 << 20

type Handler struct {
	services *service.Services

	// files describes where local uploads live and how large they may be.
	files config.Files

	// serveUploads is set when the local blob backend is active, so the
	// upload directory must be reachable over HTTP.
	serveUploads bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, storage config.Storage, logger *logger.Logger) *Handler {
	logger.Info().Bool("serve_uploads", storage.LocalFilesEnabled()).Msg("http handler created")
	return &Handler{
		services:     services,
		files:        storage.Files,
		serveUploads: storage.LocalFilesEnabled(),
		logger:       logger,
	}
}
