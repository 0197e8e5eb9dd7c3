package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/routeprofit/config"
	"github.com/Domenick1991/routeprofit/internal/cache"
	"github.com/Domenick1991/routeprofit/internal/kafka"
	"github.com/Domenick1991/routeprofit/internal/loader"
	"github.com/Domenick1991/routeprofit/internal/reference"
	"github.com/Domenick1991/routeprofit/internal/repository"
	"github.com/Domenick1991/routeprofit/internal/service/evaluation"
)

const publishAttempts = 3

// NewLoader builds the table loader described by cfg.Input.
func NewLoader(cfg *config.Config, logger *slog.Logger) *loader.Loader {
	return loader.New(
		loader.WithDelimiter(cfg.DelimiterRune()),
		loader.WithStrictCapacity(cfg.Input.StrictCapacity),
		loader.WithLogger(logger),
	)
}

// LoadIndex reads the reference data from the configured source.
func LoadIndex(ctx context.Context, cfg *config.Config, l *loader.Loader, logger *slog.Logger) (*reference.Index, error) {
	repo, release, err := repository.Open(ctx, cfg, l, logger)
	if err != nil {
		return nil, err
	}
	defer release()

	index, err := repository.BuildIndex(ctx, repo, reference.WithOriginA(cfg.Network.OriginA))
	if err != nil {
		return nil, err
	}
	logger.Info("reference data loaded",
		"source", cfg.Reference.Source,
		"airports", index.AirportCount(),
		"aircraft", index.AircraftCount(),
		"version", index.Version(),
	)
	return index, nil
}

// ServiceOptions wires the optional Redis cache and Kafka producer. Both are
// skipped when their addresses are not configured. The returned function
// closes whatever was opened.
func ServiceOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]evaluation.EvaluationServiceOption, func(), error) {
	opts := []evaluation.EvaluationServiceOption{
		evaluation.WithLogger(logger),
		evaluation.WithVerbose(cfg.Evaluation.Verbose),
		evaluation.WithWorkers(cfg.Evaluation.Workers),
	}
	closers := []func(){}
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis)
		if err := redisCache.Ping(ctx); err != nil {
			_ = redisCache.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		closers = append(closers, func() {
			if err := redisCache.Close(); err != nil {
				logger.Warn("close redis client", "error", err)
			}
		})
		opts = append(opts, evaluation.WithCache(redisCache))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		closers = append(closers, func() {
			if err := producer.Close(); err != nil {
				logger.Warn("close kafka producer", "error", err)
			}
		})
		opts = append(opts, evaluation.WithProducer(producer.WithRetries(publishAttempts), cfg.Kafka.EvaluationsTopic))
	}

	return opts, release, nil
}
