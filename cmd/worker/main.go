package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/routeprofit/config"
	"github.com/Domenick1991/routeprofit/internal/bootstrap"
	"github.com/Domenick1991/routeprofit/internal/kafka"
	"github.com/Domenick1991/routeprofit/internal/logging"
	"github.com/Domenick1991/routeprofit/internal/service/evaluation"
	"golang.org/x/time/rate"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, cfg.Evaluation.Verbose)

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Error("kafka.brokers is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	index, err := bootstrap.LoadIndex(ctx, cfg, bootstrap.NewLoader(cfg, logger), logger)
	if err != nil {
		logger.Error("load reference data", "error", err)
		os.Exit(1)
	}

	opts, release, err := bootstrap.ServiceOptions(ctx, cfg, logger)
	if err != nil {
		logger.Error("connect backends", "error", err)
		os.Exit(1)
	}
	defer release()

	svc := evaluation.NewEvaluationService(index, opts...)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.FlightsTopic)
	defer consumer.Close()

	limiter := rate.NewLimiter(rate.Limit(cfg.Worker.RatePerSecond), cfg.Worker.Burst)
	logger.Info("worker started",
		"topic", cfg.Kafka.FlightsTopic,
		"group", cfg.Kafka.GroupID,
		"rate_per_second", cfg.Worker.RatePerSecond,
	)

	err = consumer.Consume(ctx, newFlightHandler(svc, limiter, logger))
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", "error", err)
		return
	}
	logger.Info("worker stopped")
}
