// Package metrics exports Prometheus metrics for hosted sessions.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-stack/internal/stack"
)

const namespace = "stack"

// Collector counts sessions, games and drops.
// It satisfies the session hooks of the SSH server.
type Collector struct {
	gatherer prometheus.Gatherer

	sessions      prometheus.Gauge
	sessionsTotal prometheus.Counter
	games         *prometheus.CounterVec
	drops         *prometheus.CounterVec
	scores        *prometheus.HistogramVec
}

// New creates a collector and registers it with reg.
// A nil reg uses a fresh registry, reachable through Handler.
func New(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collector{
		gatherer: reg,
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of connected sessions.",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of sessions served.",
		}),
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_total",
			Help:      "Games started, by variant.",
		}, []string{"game"}),
		drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drops_total",
			Help:      "Resolved drops, by variant and outcome.",
		}, []string{"game", "outcome"}),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Final score of finished games.",
			Buckets:   []float64{1, 5, 10, 20, 30, 50, 75, 100, 150},
		}, []string{"game"}),
	}
	reg.MustRegister(c.sessions, c.sessionsTotal, c.games, c.drops, c.scores)
	return c
}

func (c *Collector) SessionStarted() {
	c.sessions.Inc()
	c.sessionsTotal.Inc()
}

func (c *Collector) SessionEnded() {
	c.sessions.Dec()
}

// GameObservers returns the observer that feeds this collector.
func (c *Collector) GameObservers(gameID, _ string) []stack.Observer {
	return []stack.Observer{c.Observer(gameID)}
}

// Observer returns a game observer labelled with gameID.
func (c *Collector) Observer(gameID string) stack.Observer {
	return &gameObserver{c: c, game: gameID}
}

// Handler serves the collected metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if logger != nil {
			logger.Info("metrics available", "address", addr, "path", "/metrics")
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type gameObserver struct {
	stack.NopObserver
	c    *Collector
	game string
}

func (o *gameObserver) OnStart() {
	o.c.games.WithLabelValues(o.game).Inc()
}

func (o *gameObserver) OnResolve(r stack.Resolution) {
	o.c.drops.WithLabelValues(o.game, r.Kind.String()).Inc()
}

func (o *gameObserver) OnGameOver(finalScore int) {
	o.c.scores.WithLabelValues(o.game).Observe(float64(finalScore))
}
