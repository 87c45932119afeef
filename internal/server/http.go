package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second

	timeoutBody = `{"detail":"Service temporarily unavailable"}`
)

type httpServer struct {
	server      *http.Server
	netListener net.Listener

	logger *logger.Logger
}

// newHTTPServer listens on cfg.HTTPAddress right away, like
// newGRPCServer, so a busy port fails startup. A positive
// cfg.RequestTimeout answers slow requests with 503.
func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) (*httpServer, error) {
	listener, err := net.Listen("tcp", cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("error listening on HTTP address %q: %w", cfg.HTTPAddress, err)
	}

	if cfg.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, cfg.RequestTimeout, timeoutBody)
	}

	return &httpServer{
		server: &http.Server{
			Addr:              listener.Addr().String(),
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		netListener: listener,
		logger:      logger,
	}, nil
}

func (h *httpServer) RunServer() {
	h.logger.Info().Str("address", h.server.Addr).Msg("HTTP server listening")
	if err := h.server.Serve(h.netListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Error().Err(err).Msg("HTTP server Serve")
	}
}

func (h *httpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown does not close a listener that Serve never received.
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Error().Err(err).Msg("HTTP server Shutdown")
	}
	_ = h.netListener.Close()
}
