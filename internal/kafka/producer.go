package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/segmentio/kafka-go"
)

type EvaluationEvent struct {
	RunID        string                  `json:"run_id"`
	Row          int                     `json:"row,omitempty"`
	Origin       string                  `json:"origin"`
	Destination  string                  `json:"destination"`
	AircraftType string                  `json:"aircraft_type"`
	Valid        bool                    `json:"valid"`
	Reason       string                  `json:"reason,omitempty"`
	Detail       string                  `json:"detail,omitempty"`
	Breakdown    *domain.ProfitBreakdown `json:"breakdown,omitempty"`
	EvaluatedAt  time.Time               `json:"evaluated_at"`
}

func NewEvaluationEvent(e domain.Evaluation, at time.Time) EvaluationEvent {
	return EvaluationEvent{
		RunID:        e.RunID,
		Row:          e.Flight.Row,
		Origin:       e.Flight.Origin,
		Destination:  e.Flight.Destination,
		AircraftType: e.Flight.AircraftType,
		Valid:        e.Result.Valid,
		Reason:       e.Result.Reason.String(),
		Detail:       e.Result.Detail,
		Breakdown:    e.Breakdown,
		EvaluatedAt:  at,
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
	logger *slog.Logger
}

func NewProducer(brokers []string, logger *slog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	p.logger.Debug("published to kafka", "topic", topic, "key", key, "bytes", len(data))
	return nil
}

func (p *Producer) PublishWithRetry(ctx context.Context, topic, key string, payload interface{}, maxRetries int) error {
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		err := p.Publish(ctx, topic, key, payload)
		if err == nil {
			return nil
		}

		lastErr = err
		p.logger.Warn("kafka publish attempt failed", "attempt", i+1, "error", err)

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
			}
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// RetryingProducer publishes through PublishWithRetry with a fixed number of
// attempts.
type RetryingProducer struct {
	producer *Producer
	attempts int
}

func (p *Producer) WithRetries(attempts int) *RetryingProducer {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryingProducer{producer: p, attempts: attempts}
}

func (r *RetryingProducer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	return r.producer.PublishWithRetry(ctx, topic, key, payload, r.attempts)
}
