package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tair/dairy-ledger/internal/app"
	"github.com/tair/dairy-ledger/pkg/config"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/tracing"
)

func main() {
	cfg := config.Load("dairy-ledger")

	logger.Init(logger.Options{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("timezone", cfg.Timezone).
		Bool("strict_stock", cfg.StrictStock).
		Bool("auth_enabled", cfg.AuthEnabled).
		Msg("Starting dairy ledger service")

	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: "1.0.0",
		Endpoint:       cfg.JaegerEndpoint,
		SampleRatio:    cfg.TraceSampleRatio,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}()

	server, cleanup, err := app.InitializeServer(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize server")
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server stopped with error")
	}
	logger.Logger.Info().Msg("Server exited")
}
