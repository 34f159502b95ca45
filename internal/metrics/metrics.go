// Package metrics exposes catalog client and store counters to prometheus.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmcdole/holonet/internal/domain"
)

// Recorder implements swapi.RequestObserver and store.Observer.
type Recorder struct {
	registry *prometheus.Registry

	fetchDuration *prometheus.HistogramVec
	fetchTotal    *prometheus.CounterVec
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
}

// NewRecorder registers the holonet collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "holonet_fetch_duration_seconds",
				Help:    "Catalog request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "op"},
		),
		fetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holonet_fetch_requests_total",
				Help: "Total number of catalog requests",
			},
			[]string{"kind", "op", "status"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holonet_cache_hits_total",
				Help: "Store lookups served from cache",
			},
			[]string{"store", "cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holonet_cache_misses_total",
				Help: "Store lookups that went to the network",
			},
			[]string{"store", "cache"},
		),
		fetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "holonet_fetch_errors_total",
				Help: "Failed store fetches by error code",
			},
			[]string{"store", "code"},
		),
	}
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) ObserveRequest(kind domain.Kind, op string, status int, elapsed time.Duration) {
	r.fetchDuration.WithLabelValues(string(kind), op).Observe(elapsed.Seconds())
	r.fetchTotal.WithLabelValues(string(kind), op, statusLabel(status)).Inc()
}

func (r *Recorder) CacheHit(store, cache string) {
	r.cacheHits.WithLabelValues(store, cache).Inc()
}

func (r *Recorder) CacheMiss(store, cache string) {
	r.cacheMisses.WithLabelValues(store, cache).Inc()
}

func (r *Recorder) FetchError(store string, code domain.ErrorCode) {
	r.fetchErrors.WithLabelValues(store, string(code)).Inc()
}

func statusLabel(status int) string {
	if status == 0 {
		return "none"
	}
	return strconv.Itoa(status)
}

// Handler returns a router serving /metrics.
func (r *Recorder) Handler() http.Handler {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return router
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics listener started", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
