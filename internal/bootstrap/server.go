package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/routeprofit/api"
	"github.com/Domenick1991/routeprofit/config"
	evaluationapi "github.com/Domenick1991/routeprofit/internal/api/evaluation_service_api"
	"github.com/Domenick1991/routeprofit/internal/observability"
	"github.com/Domenick1991/routeprofit/internal/reference"
	"github.com/Domenick1991/routeprofit/internal/service/evaluation"
	"google.golang.org/grpc"
)

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
	logger     *slog.Logger
}

// Run starts the gRPC and HTTP servers and blocks until ctx is cancelled or
// a server fails.
func Run(ctx context.Context, cfg *config.Config, svc evaluation.EvaluationUseCase, index *reference.Index, metrics *observability.Collector, logger *slog.Logger) error {
	s := NewServers(cfg, svc, index, metrics, logger)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	httpLis, err := net.Listen("tcp", cfg.HTTP.Address)
	if err != nil {
		lis.Close()
		return fmt.Errorf("listen HTTP %s: %w", cfg.HTTP.Address, err)
	}

	return s.Serve(ctx, lis, httpLis)
}

func NewServers(cfg *config.Config, svc evaluation.EvaluationUseCase, index *reference.Index, metrics *observability.Collector, logger *slog.Logger) *Servers {
	grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(metrics.UnaryServerInterceptor()))
	evaluationapi.RegisterEvaluationServiceServer(grpcSrv, evaluationapi.NewServer(svc))

	router := api.NewRouter(api.RouterDeps{
		Evaluations: api.NewEvaluationHandler(svc, cfg.Report.CurrencySymbol),
		Reference:   api.NewReferenceHandler(index),
		Metrics:     metrics.Handler(),
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
		logger:     logger,
	}
}

// Serve runs both servers on the given listeners until ctx is done.
func (s *Servers) Serve(ctx context.Context, grpcLis, httpLis net.Listener) error {
	errCh := make(chan error, 2)

	go func() { errCh <- s.grpcServer.Serve(grpcLis) }()
	go func() { errCh <- s.httpServer.Serve(httpLis) }()

	s.logger.Info("servers started", "grpc", grpcLis.Addr().String(), "http", httpLis.Addr().String())

	select {
	case err := <-errCh:
		s.grpcServer.Stop()
		_ = s.httpServer.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.logger.Info("servers stopped")
		return nil
	}
}
