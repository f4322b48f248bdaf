// Package metrics exports simulation telemetry in the Prometheus format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rdavidson1994/sand/internal/sims/sand"
	"github.com/rdavidson1994/sand/pkg/logger"
)

var log = logger.For("metrics")

// Event kinds are the only label values of the events counter.
const (
	EventMove        = "move"
	EventCollision   = "collision"
	EventBounce      = "bounce"
	EventPushThrough = "push_through"
	EventReaction    = "reaction"
)

// Recorder owns one registry of simulation metrics.
type Recorder struct {
	reg *prometheus.Registry

	stepDuration prometheus.Histogram
	ticks        prometheus.Counter
	particles    prometheus.Gauge
	paused       prometheus.Gauge
	events       *prometheus.CounterVec
}

// NewRecorder registers the simulation metrics on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		stepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sand_step_duration_seconds",
			Help:    "Time spent advancing one frame of ticks",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "sand_ticks_total",
			Help: "Ticks simulated",
		}),
		particles: f.NewGauge(prometheus.GaugeOpts{
			Name: "sand_particles",
			Help: "Occupied cells after the last step",
		}),
		paused: f.NewGauge(prometheus.GaugeOpts{
			Name: "sand_particles_paused",
			Help: "Sleeping cells after the last step",
		}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "sand_events_total",
			Help: "Motion and reaction events",
		}, []string{"kind"}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// ObserveStep records one completed step.
func (r *Recorder) ObserveStep(rep sand.StepReport) {
	r.stepDuration.Observe(rep.Elapsed.Seconds())
	r.ticks.Add(float64(rep.Ticks))
	r.particles.Set(float64(rep.Occupied))
	r.paused.Set(float64(rep.Paused))
	r.events.WithLabelValues(EventMove).Add(float64(rep.Stats.Moves))
	r.events.WithLabelValues(EventCollision).Add(float64(rep.Stats.Collisions))
	r.events.WithLabelValues(EventBounce).Add(float64(rep.Stats.Bounces))
	r.events.WithLabelValues(EventPushThrough).Add(float64(rep.Stats.PushThroughs))
	r.events.WithLabelValues(EventReaction).Add(float64(rep.Stats.Reactions))
}

// Handler serves /metrics and /health.
func (r *Recorder) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}

// Serve runs the metrics endpoint on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("metrics endpoint listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return fmt.Errorf("metrics listener: %w", err)
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics shutdown: %w", err)
	}
	return nil
}
