package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tair/dairy-ledger/internal/notify"
	"github.com/tair/dairy-ledger/kafka"
	"github.com/tair/dairy-ledger/pkg/config"
	"github.com/tair/dairy-ledger/pkg/logger"
	"github.com/tair/dairy-ledger/pkg/tracing"
)

func main() {
	cfg := config.Load("dairy-notifier")

	logger.Init(logger.Options{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})

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
		tracing.Shutdown(ctx, tp)
	}()

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, kafka.Topics)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	breaker := notify.NewBreaker("sms-gateway", 5, 30*time.Second)
	sms := notify.NewSMSClient(cfg.SMSServiceURL, 10*time.Second, breaker)
	notify.NewNotifier(sms, cfg.ShopName, cfg.OwnerPhone).Register(consumer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	logger.Logger.Info().
		Str("sms_service", cfg.SMSServiceURL).
		Str("group_id", cfg.KafkaGroupID).
		Msg("Notifier running")

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down notifier...")
}
