package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/service"
)

// pingerFunc adapts a function to [Pinger].
type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

var (
	dbUp   = pingerFunc(func(context.Context) error { return nil })
	dbDown = pingerFunc(func(context.Context) error { return errors.New("connection refused") })
)

func TestHealth_Check(t *testing.T) {
	tests := []struct {
		name    string
		db      Pinger
		service string
		want    healthpb.HealthCheckResponse_ServingStatus
	}{
		{name: "server, db up", db: dbUp, service: "", want: healthpb.HealthCheckResponse_SERVING},
		{name: "named, db up", db: dbUp, service: ServiceName, want: healthpb.HealthCheckResponse_SERVING},
		{name: "server, db down", db: dbDown, service: "", want: healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHealthServer(tt.db, logger.Nop())

			resp, err := h.Check(context.Background(), &healthpb.HealthCheckRequest{Service: tt.service})

			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.GetStatus())
		})
	}
}

func TestHealth_Check_UnknownService(t *testing.T) {
	h := newHealthServer(dbUp, logger.Nop())

	_, err := h.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "billing"})

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHealth_List(t *testing.T) {
	h := newHealthServer(dbDown, logger.Nop())

	resp, err := h.List(context.Background(), &healthpb.HealthListRequest{})

	require.NoError(t, err)
	require.Len(t, resp.GetStatuses(), 2)
	for _, st := range resp.GetStatuses() {
		assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, st.GetStatus())
	}
}

func TestHandler_RegisterServesOverGRPC(t *testing.T) {
	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	NewHandler(&service.Services{}, dbUp, logger.Nop()).Register(server)

	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
