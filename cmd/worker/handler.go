package main

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/routeprofit/internal/kafka"
	"github.com/Domenick1991/routeprofit/internal/service/evaluation"
	kafkaGo "github.com/segmentio/kafka-go"
	"golang.org/x/time/rate"
)

// newFlightHandler evaluates one flight request per message. Undecodable
// messages are logged and skipped; only a cancelled context stops the loop.
func newFlightHandler(svc evaluation.EvaluationUseCase, limiter *rate.Limiter, logger *slog.Logger) func(context.Context, kafkaGo.Message) error {
	return func(ctx context.Context, msg kafkaGo.Message) error {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		flight, err := kafka.DecodeFlightRequest(msg)
		if err != nil {
			logger.Warn("skipping flight request", "partition", msg.Partition, "offset", msg.Offset, "error", err)
			return nil
		}

		e, err := svc.Evaluate(ctx, flight)
		if err != nil {
			return err
		}
		logger.Debug("flight evaluated",
			"offset", msg.Offset,
			"origin", flight.Origin,
			"destination", flight.Destination,
			"valid", e.Result.Valid,
			"reason", e.Result.Reason.String(),
		)
		return nil
	}
}
