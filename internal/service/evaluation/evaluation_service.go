package evaluation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/Domenick1991/routeprofit/internal/kafka"
	"github.com/Domenick1991/routeprofit/internal/reference"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type EvaluationUseCase interface {
	Evaluate(ctx context.Context, flight domain.FlightRequest) (domain.Evaluation, error)
	EvaluateAll(ctx context.Context, flights []domain.FlightRequest) ([]domain.Evaluation, domain.Summary, error)
}

type Cache interface {
	GetEvaluation(ctx context.Context, key string) (*domain.Evaluation, error)
	SetEvaluation(ctx context.Context, key string, e domain.Evaluation) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Metrics interface {
	ObserveEvaluation(e domain.Evaluation, elapsed time.Duration)
}

type EvaluationService struct {
	index    *reference.Index
	logger   *slog.Logger
	verbose  bool
	cache    Cache
	producer Producer
	topic    string
	metrics  Metrics
	workers  int
	runID    string
	now      func() time.Time
}

type EvaluationServiceOption func(*EvaluationService)

func WithLogger(logger *slog.Logger) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.logger = logger
	}
}

// WithVerbose traces every rule decision and profit breakdown at debug level.
func WithVerbose(verbose bool) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.verbose = verbose
	}
}

func WithCache(cache Cache) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, topic string) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithMetrics(metrics Metrics) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.metrics = metrics
	}
}

// WithWorkers bounds how many flights EvaluateAll evaluates at once.
func WithWorkers(n int) EvaluationServiceOption {
	return func(s *EvaluationService) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithRunID(id string) EvaluationServiceOption {
	return func(s *EvaluationService) {
		s.runID = id
	}
}

func NewEvaluationService(index *reference.Index, opts ...EvaluationServiceOption) *EvaluationService {
	service := &EvaluationService{
		index:   index,
		logger:  slog.Default(),
		workers: 1,
		runID:   uuid.NewString(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *EvaluationService) RunID() string {
	return s.runID
}

// Evaluate validates one flight and prices it when it passes. Failures of
// the cache or the event stream are logged and never change the outcome;
// the only error is a cancelled context.
func (s *EvaluationService) Evaluate(ctx context.Context, flight domain.FlightRequest) (domain.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Evaluation{}, err
	}

	start := s.now()
	key := s.cacheKey(flight)

	if s.cache != nil && key != "" {
		cached, err := s.cache.GetEvaluation(ctx, key)
		if err != nil {
			s.logger.Warn("evaluation cache read failed", "error", err)
		} else if cached != nil {
			cached.RunID = s.runID
			cached.Flight = flight
			s.finish(ctx, *cached, start)
			return *cached, nil
		}
	}

	e := s.evaluate(flight)

	if s.cache != nil && key != "" {
		if err := s.cache.SetEvaluation(ctx, key, e); err != nil {
			s.logger.Warn("evaluation cache write failed", "error", err)
		}
	}

	s.finish(ctx, e, start)
	return e, nil
}

func (s *EvaluationService) evaluate(flight domain.FlightRequest) domain.Evaluation {
	trace := noTrace
	if s.verbose {
		trace = s.traceRule(flight)
	}

	e := domain.Evaluation{
		RunID:  s.runID,
		Flight: flight,
		Result: validate(flight, s.index, trace),
	}
	if !e.Result.Valid {
		return e
	}

	b := Breakdown(flight, s.index)
	e.Breakdown = &b
	if s.verbose {
		s.logger.Debug("profit computed",
			"row", flight.Row,
			"distance_km", b.Distance,
			"revenue", b.Revenue,
			"seats_taken", b.SeatsTaken,
			"unit_cost", b.UnitCost,
			"total_cost", b.TotalCost,
			"profit", b.Profit,
		)
	}
	return e
}

func (s *EvaluationService) finish(ctx context.Context, e domain.Evaluation, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveEvaluation(e, s.now().Sub(start))
	}
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.NewEvaluationEvent(e, s.now())
	if err := s.producer.Publish(ctx, s.topic, e.RunID, event); err != nil {
		s.logger.Warn("failed to publish evaluation event", "row", e.Flight.Row, "error", err)
	}
}

// EvaluateAll returns evaluations in input order regardless of the number of
// workers, together with the run summary.
func (s *EvaluationService) EvaluateAll(ctx context.Context, flights []domain.FlightRequest) ([]domain.Evaluation, domain.Summary, error) {
	results := make([]domain.Evaluation, len(flights))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, f := range flights {
		g.Go(func() error {
			e, err := s.Evaluate(gctx, f)
			if err != nil {
				return err
			}
			results[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.Summary{}, err
	}

	var summary domain.Summary
	for _, e := range results {
		summary.Add(e)
	}
	s.logger.Info("evaluation run finished",
		"run_id", s.runID,
		"flights", summary.Total,
		"valid", summary.Valid,
		"invalid", summary.Invalid,
	)
	return results, summary, nil
}

func (s *EvaluationService) traceRule(flight domain.FlightRequest) ruleTracer {
	return func(rule string, passed bool, attrs ...any) {
		args := append([]any{
			"row", flight.Row,
			"origin", flight.Origin,
			"destination", flight.Destination,
			"aircraft", flight.AircraftType,
			"rule", rule,
			"passed", passed,
		}, attrs...)
		s.logger.Debug("rule evaluated", args...)
	}
}

// cacheKey identifies a flight's inputs together with the reference data
// they are checked against. The row number is not part of it.
func (s *EvaluationService) cacheKey(flight domain.FlightRequest) string {
	flight.Row = 0
	payload, err := json.Marshal(struct {
		Version string               `json:"v"`
		Flight  domain.FlightRequest `json:"f"`
		Parse   string               `json:"p"`
	}{s.index.Version(), flight, flight.ParseError})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

var _ EvaluationUseCase = (*EvaluationService)(nil)
