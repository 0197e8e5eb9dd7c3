package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/routeprofit/config"
	"github.com/Domenick1991/routeprofit/internal/bootstrap"
	"github.com/Domenick1991/routeprofit/internal/logging"
	"github.com/Domenick1991/routeprofit/internal/observability"
	"github.com/Domenick1991/routeprofit/internal/service/evaluation"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadOptional(cfgPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log, cfg.Evaluation.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	index, err := bootstrap.LoadIndex(ctx, cfg, bootstrap.NewLoader(cfg, logger), logger)
	if err != nil {
		logger.Error("load reference data", "error", err)
		os.Exit(1)
	}

	metrics, err := observability.NewCollector(nil)
	if err != nil {
		logger.Error("register metrics", "error", err)
		os.Exit(1)
	}
	metrics.SetReferenceSize(index.AirportCount(), index.AircraftCount())

	opts, release, err := bootstrap.ServiceOptions(ctx, cfg, logger)
	if err != nil {
		logger.Error("connect backends", "error", err)
		os.Exit(1)
	}
	defer release()

	svc := evaluation.NewEvaluationService(index, append(opts, evaluation.WithMetrics(metrics))...)

	if err := bootstrap.Run(ctx, cfg, svc, index, metrics, logger); err != nil {
		logger.Error("server error", "error", err)
		stop()
		release()
		os.Exit(1)
	}
}
