// Package metrics exposes live OldSpot simulation progress as Prometheus
// gauges, served over HTTP via promhttp. OldSpot instruments its own
// process rather than querying an external Prometheus server.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter serves OldSpot's own run progress as Prometheus metrics.
type Exporter struct {
	registry *prometheus.Registry

	iteration    prometheus.Gauge
	rootTTFMean  prometheus.Gauge
	warningCount prometheus.Gauge
	server       *http.Server
}

// New creates an Exporter registered against a fresh registry.
func New() *Exporter {
	reg := prometheus.NewRegistry()

	e := &Exporter{
		registry: reg,
		iteration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "oldspot_iteration",
			Help: "Index of the most recently completed Monte-Carlo iteration.",
		}),
		rootTTFMean: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "oldspot_root_ttf_mean_seconds",
			Help: "Running mean time-to-failure of the root node, in seconds.",
		}),
		warningCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "oldspot_warning_count",
			Help: "Total de-duplicated diagnostic warnings emitted so far.",
		}),
	}

	reg.MustRegister(e.iteration, e.rootTTFMean, e.warningCount)
	return e
}

// Observe updates the exported gauges from a completed iteration.
func (e *Exporter) Observe(iteration int, rootTTFMean float64, warningCount int) {
	e.iteration.Set(float64(iteration))
	e.rootTTFMean.Set(rootTTFMean)
	e.warningCount.Set(float64(warningCount))
}

// Serve starts an HTTP server exposing /metrics on addr. It runs until ctx
// is cancelled, at which point it shuts down gracefully.
func (e *Exporter) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))

	e.server = &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		if err := e.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return e.server.Shutdown(shutdownCtx)
	}
}
