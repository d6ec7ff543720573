// Package metrics exposes Prometheus instrumentation for the game loop.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/winterfair/fairbot/internal/game/session"
)

var (
	callbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_callbacks_total",
			Help: "Total number of callback updates labeled by prefix and status",
		},
		[]string{"prefix", "status"},
	)
	callbackDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "callback_duration_seconds",
			Help:    "Duration of callback handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"prefix"},
	)
	taskOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_outcomes_total",
			Help: "Task lifecycle outcomes labeled by archetype and outcome",
		},
		[]string{"archetype", "outcome"},
	)
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors split by code and severity",
		},
		[]string{"code", "severity"},
	)
	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_task_sessions",
			Help: "Current number of live task sessions",
		},
	)
)

// RecordCallback increments callback counters and records duration.
func RecordCallback(prefix, status string, duration time.Duration) {
	if prefix == "" {
		prefix = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	callbacksTotal.WithLabelValues(prefix, status).Inc()
	callbackDurationSeconds.WithLabelValues(prefix).Observe(duration.Seconds())
}

// RecordError increments error counters with metadata.
func RecordError(code, severity string) {
	if code == "" {
		code = "unknown"
	}
	if severity == "" {
		severity = "unknown"
	}

	errorsTotal.WithLabelValues(code, severity).Inc()
}

// Recorder adapts the counters to the engine's outcome hooks.
type Recorder struct{}

// NewRecorder returns the engine metrics adapter.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (Recorder) TaskStarted(archetype string) {
	taskOutcomesTotal.WithLabelValues(archetype, "started").Inc()
}

func (Recorder) TaskCompleted(archetype string) {
	taskOutcomesTotal.WithLabelValues(archetype, "completed").Inc()
}

func (Recorder) TaskFailed(archetype string) {
	taskOutcomesTotal.WithLabelValues(archetype, "failed").Inc()
}

func (Recorder) TaskCancelled(archetype string) {
	taskOutcomesTotal.WithLabelValues(archetype, "cancelled").Inc()
}

// SessionCollector periodically gathers the live session count and emits
// the gauge metric.
type SessionCollector struct {
	sessions session.Store
}

// NewSessionCollector builds a collector bound to the session store.
func NewSessionCollector(sessions session.Store) *SessionCollector {
	return &SessionCollector{sessions: sessions}
}

// Run polls the store every 10 seconds until ctx is cancelled.
func (c *SessionCollector) Run(ctx context.Context) {
	if c == nil || c.sessions == nil {
		return
	}

	for {
		if count, err := c.sessions.Count(ctx); err == nil {
			activeSessions.Set(float64(count))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Second):
		}
	}
}
