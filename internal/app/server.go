package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"gorm.io/gorm"

	"github.com/tair/dairy-ledger/pkg/config"
	"github.com/tair/dairy-ledger/pkg/httpx"
	"github.com/tair/dairy-ledger/pkg/logger"
)

// shutdownTimeout bounds how long in-flight requests get to finish
const shutdownTimeout = 15 * time.Second

// Server runs the HTTP API and the gRPC health endpoint side by side
type Server struct {
	cfg    *config.Config
	http   *http.Server
	grpc   *grpc.Server
	health *health.Server
	db     *gorm.DB
}

// NewServer assembles the listeners around the router
func NewServer(cfg *config.Config, h *Handlers, db *gorm.DB, limiter *httpx.RateLimiter) *Server {
	grpcServer, healthServer := NewGRPCServer()
	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:              ":" + cfg.HTTPPort,
			Handler:           NewRouter(cfg, h, db, limiter),
			ReadHeaderTimeout: 10 * time.Second,
		},
		grpc:   grpcServer,
		health: healthServer,
		db:     db,
	}
}

// Run serves until ctx is cancelled, then drains both listeners
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", ":"+s.cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on grpc port %s: %w", s.cfg.GRPCPort, err)
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Logger.Info().
			Str("port", s.cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		logger.Logger.Info().Str("port", s.cfg.GRPCPort).Msg("gRPC server started")
		if err := s.grpc.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	healthCtx, stopHealth := context.WithCancel(ctx)
	defer stopHealth()
	go WatchHealth(healthCtx, s.health, s.db, 15*time.Second)

	select {
	case <-ctx.Done():
	case err = <-errCh:
		logger.Logger.Error().Err(err).Msg("Server failed")
	}

	logger.Logger.Info().Msg("Shutting down servers...")
	stopHealth()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := s.http.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Logger.Error().Err(shutdownErr).Msg("HTTP server shutdown failed")
	}

	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		s.grpc.Stop()
	}

	return err
}
