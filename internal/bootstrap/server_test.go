package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/routeprofit/config"
	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/Domenick1991/routeprofit/internal/logging"
	"github.com/Domenick1991/routeprofit/internal/observability"
	"github.com/Domenick1991/routeprofit/internal/reference"
	"github.com/Domenick1991/routeprofit/internal/service/evaluation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServers_ServeAndShutdown(t *testing.T) {
	index := reference.NewIndex(
		[]domain.Airport{{Code: "CDG", DistanceFromA: 700, DistanceFromB: 350}},
		[]domain.Aircraft{{TypeCode: "A321", CostPerSeatPer100km: 0.1, MaxRange: 3500, TotalSeats: 200, EconomySeats: 180, BusinessSeats: 20}},
	)
	metrics, err := observability.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	svc := evaluation.NewEvaluationService(index, evaluation.WithLogger(logging.Discard()), evaluation.WithMetrics(metrics))

	s := NewServers(config.Default(), svc, index, metrics, logging.Discard())

	grpcLis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	httpLis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, grpcLis, httpLis) }()

	url := fmt.Sprintf("http://%s/api/v1/airports/CDG", httpLis.Addr().String())
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"code":"CDG"`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("servers did not stop")
	}
}
