package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/service"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

// testConfig returns a configuration with the given server addresses and a
// local upload directory under the test's temp dir.
func testConfig(t *testing.T, httpAddr, grpcAddr string) config.StructuredConfig {
	t.Helper()

	return config.StructuredConfig{
		Storage: config.Storage{
			Files: config.Files{
				UploadDir:      t.TempDir(),
				PublicPrefix:   config.DefaultPublicPrefix,
				MaxUploadBytes: config.DefaultMaxUploadBytes,
			},
		},
		Server: config.Server{
			HTTPAddress: httpAddr,
			GRPCAddress: grpcAddr,
		},
	}
}

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		httpAddr string
		grpcAddr string
		wantHTTP bool
		wantGRPC bool
	}{
		{name: "both addresses", httpAddr: ":8000", grpcAddr: ":9090", wantHTTP: true, wantGRPC: true},
		{name: "only http", httpAddr: ":8000", wantHTTP: true},
		{name: "only grpc", grpcAddr: ":9090", wantGRPC: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewHandlers(&service.Services{}, testConfig(t, tt.httpAddr, tt.grpcAddr), okPinger{}, logger.Nop())

			require.NoError(t, err)
			require.NotNil(t, h)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

func TestNewHandlers_NoAddresses(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, testConfig(t, "", ""), okPinger{}, logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := testConfig(t, ":8000", ":9090")

	h1, err1 := NewHandlers(&service.Services{}, cfg, okPinger{}, logger.Nop())
	h2, err2 := NewHandlers(&service.Services{}, cfg, okPinger{}, logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
	assert.NotSame(t, h1.GRPC, h2.GRPC)
}
