// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
)

// ServiceName is the health-checked service name. The empty name stands
// for the whole server and reports the same status.
const ServiceName = "inventory"

// Pinger is satisfied by *store.DB (through the embedded *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// healthServer reports SERVING while the database answers a ping and
// NOT_SERVING otherwise. Watch is not supported.
type healthServer struct {
	healthpb.UnimplementedHealthServer

	db     Pinger
	logger *logger.Logger
}

func newHealthServer(db Pinger, logger *logger.Logger) *healthServer {
	return &healthServer{db: db, logger: logger}
}

// Register installs the gRPC services of h on server.
func (h *Handler) Register(server grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(server, h.health)
}

func (s *healthServer) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if name := req.GetService(); name != "" && name != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", name)
	}

	return &healthpb.HealthCheckResponse{Status: s.servingStatus(ctx)}, nil
}

func (s *healthServer) List(ctx context.Context, _ *healthpb.HealthListRequest) (*healthpb.HealthListResponse, error) {
	st := s.servingStatus(ctx)

	return &healthpb.HealthListResponse{
		Statuses: map[string]*healthpb.HealthCheckResponse{
			"":          {Status: st},
			ServiceName: {Status: st},
		},
	}, nil
}

func (s *healthServer) servingStatus(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn().Err(err).Str("func", "*healthServer.servingStatus").Msg("database ping failed")
		return healthpb.HealthCheckResponse_NOT_SERVING
	}
	return healthpb.HealthCheckResponse_SERVING
}
