package grpc

import (
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/service"
)

// Handler is the root gRPC transport handler.
//
// It serves the standard grpc.health.v1 protocol. A handler instance is
// created once at startup and registered on the gRPC server with
// [Handler.Register].
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	// health answers grpc.health.v1.Health.
	health *healthServer

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler]. db is pinged on every health check.
func NewHandler(services *service.Services, db Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   newHealthServer(db, logger),
		logger:   logger,
	}
}
