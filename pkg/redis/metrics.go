package redis

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	redisRequestsTotal   *prometheus.CounterVec
	redisErrorsTotal     *prometheus.CounterVec
	redisRequestDuration *prometheus.HistogramVec
)

func init() {
	redisRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_requests_total",
			Help: "Total number of Redis requests by method.",
		},
		[]string{"method"},
	)
	redisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_errors_total",
			Help: "Total number of Redis errors by method.",
		},
		[]string{"method"},
	)
	redisRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_request_duration_seconds",
			Help:    "Redis request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	prometheus.MustRegister(redisRequestsTotal, redisErrorsTotal, redisRequestDuration)
}

// MetricsClient wraps Client to collect Prometheus metrics.
type MetricsClient struct {
	next *Client
}

// NewMetricsClient creates an instrumented Redis client.
func NewMetricsClient(next *Client) *MetricsClient {
	return &MetricsClient{next: next}
}

func (m *MetricsClient) observe(method string, err error, started time.Time) {
	redisRequestDuration.WithLabelValues(method).Observe(time.Since(started).Seconds())
	redisRequestsTotal.WithLabelValues(method).Inc()
	if err != nil {
		redisErrorsTotal.WithLabelValues(method).Inc()
	}
}

// Get instruments Client.Get.
func (m *MetricsClient) Get(ctx context.Context, key string) (string, error) {
	started := time.Now()
	result, err := m.next.Get(ctx, key)
	m.observe("get", err, started)
	return result, err
}

// Set instruments Client.Set.
func (m *MetricsClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	started := time.Now()
	err := m.next.Set(ctx, key, value, ttl)
	m.observe("set", err, started)
	return err
}

// SetNX instruments Client.SetNX.
func (m *MetricsClient) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	started := time.Now()
	ok, err := m.next.SetNX(ctx, key, value, ttl)
	m.observe("setnx", err, started)
	return ok, err
}

// Delete instruments Client.Delete.
func (m *MetricsClient) Delete(ctx context.Context, key string) error {
	started := time.Now()
	err := m.next.Delete(ctx, key)
	m.observe("delete", err, started)
	return err
}

// Close closes underlying client.
func (m *MetricsClient) Close() error {
	return m.next.Close()
}
