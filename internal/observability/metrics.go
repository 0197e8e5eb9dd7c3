package observability

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Collector bundles the evaluation metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	Evaluations        *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	Profit             prometheus.Counter
	ReferenceAirports  prometheus.Gauge
	ReferenceAircraft  prometheus.Gauge

	RPCRequests  *prometheus.CounterVec
	RPCDurations *prometheus.HistogramVec
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	evaluations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "flight_evaluations_total",
		Help: "Evaluated flight requests, labeled by outcome and failure reason.",
	}, []string{"outcome", "reason"}))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "flight_evaluation_duration_seconds",
		Help:    "Time spent validating and pricing one flight request.",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}))
	if err != nil {
		return nil, err
	}

	profit, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "flight_profit_positive_total",
		Help: "Sum of positive profits over valid flights.",
	}))
	if err != nil {
		return nil, err
	}

	airports, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reference_airports",
		Help: "Airports in the loaded reference index.",
	}))
	if err != nil {
		return nil, err
	}

	aircraft, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reference_aircraft",
		Help: "Aircraft types in the loaded reference index.",
	}))
	if err != nil {
		return nil, err
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rpc_requests_total",
		Help: "Handled gRPC calls, labeled by service, method and status code.",
	}, []string{"service", "method", "code"}))
	if err != nil {
		return nil, err
	}

	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rpc_request_duration_seconds",
		Help:    "gRPC call latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"service", "method"}))
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:           gatherer,
		RPCRequests:        requests,
		RPCDurations:       durations,
		Evaluations:        evaluations,
		EvaluationDuration: duration,
		Profit:             profit,
		ReferenceAirports:  airports,
		ReferenceAircraft:  aircraft,
	}, nil
}

// ObserveEvaluation records one evaluated flight.
func (c *Collector) ObserveEvaluation(e domain.Evaluation, elapsed time.Duration) {
	if c == nil {
		return
	}
	outcome := "valid"
	if !e.Result.Valid {
		outcome = "invalid"
	}
	c.Evaluations.WithLabelValues(outcome, e.Result.Reason.String()).Inc()
	c.EvaluationDuration.Observe(elapsed.Seconds())
	// Counters cannot go down, so losses are only visible per outcome.
	if p := e.Profit(); p > 0 {
		c.Profit.Add(p)
	}
}

func (c *Collector) SetReferenceSize(airports, aircraft int) {
	if c == nil {
		return
	}
	c.ReferenceAirports.Set(float64(airports))
	c.ReferenceAircraft.Set(float64(aircraft))
}

// UnaryServerInterceptor records request counts and durations for unary RPCs.
func (c *Collector) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if c == nil {
			return resp, err
		}

		fullMethod := ""
		if info != nil {
			fullMethod = info.FullMethod
		}
		service, method := SplitMethod(fullMethod)
		c.RPCRequests.WithLabelValues(service, method, status.Code(err).String()).Inc()
		c.RPCDurations.WithLabelValues(service, method).Observe(time.Since(start).Seconds())
		return resp, err
	}
}

// SplitMethod turns "/pkg.Service/Method" into its service and method parts.
func SplitMethod(fullMethod string) (string, string) {
	trimmed := strings.TrimPrefix(fullMethod, "/")
	service, method, ok := strings.Cut(trimmed, "/")
	if !ok {
		return "unknown", trimmed
	}
	return service, method
}

// Handler exposes the registry the collector was registered on.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// register returns the already registered collector when an identical one
// exists, so constructing twice against the same registry is harmless.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}
