package monitoring

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	resourceOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resource_operations_total",
			Help: "Controller operations per resource and outcome",
		},
		[]string{"resource", "operation", "status"},
	)

	cachedRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "resource_cached_records",
			Help: "Records currently held in a controller cache",
		},
		[]string{"resource"},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "HTTP calls issued to the backend",
		},
		[]string{"method", "code"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Latency of HTTP calls issued to the backend",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"method"},
	)
)

// TrackOperation counts one controller operation. status is "success",
// "failure", "invalid" or "declined".
func TrackOperation(resource, operation, status string) {
	resourceOperations.WithLabelValues(resource, operation, status).Inc()
}

func TrackCacheSize(resource string, n int) {
	cachedRecords.WithLabelValues(resource).Set(float64(n))
}

// TrackRequest records one HTTP round trip. code is 0 when the request
// never produced a response.
func TrackRequest(method string, code int, duration time.Duration) {
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	httpRequests.WithLabelValues(method, label).Inc()
	httpDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	slog.Info("metrics endpoint listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
