// Package metrics exposes Prometheus instruments of the sync server.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

const namespace = "entrysync"

// Metrics is safe for use as a nil pointer, in which case nothing is
// recorded.
type Metrics struct {
	pushedRecords  prometheus.Counter
	appliedRecords prometheus.Counter
	staleRecords   prometheus.Counter
	pulls          *prometheus.CounterVec
	pulledRecords  prometheus.Counter
	subscribers    prometheus.Gauge
	rpcDuration    *prometheus.HistogramVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		pushedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "pushed_records_total",
			Help: "Records received in pushes.",
		}),
		appliedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "applied_records_total",
			Help: "Pushed records that won and were stored.",
		}),
		staleRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "stale_records_total",
			Help: "Pushed records older than the stored copy.",
		}),
		pulls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "pulls_total",
			Help: "Pull requests by kind (full, incremental, rejected).",
		}, []string{"kind"}),
		pulledRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "pulled_records_total",
			Help: "Records returned by pulls.",
		}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "realtime_subscribers",
			Help: "Open realtime change feed connections.",
		}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "rpc_duration_seconds",
			Help:    "Duration of gRPC calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}
	reg.MustRegister(m.pushedRecords, m.appliedRecords, m.staleRecords,
		m.pulls, m.pulledRecords, m.subscribers, m.rpcDuration)
	return m
}

// Handler serves the registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) ObservePush(pushed, applied, stale int) {
	if m == nil {
		return
	}
	m.pushedRecords.Add(float64(pushed))
	m.appliedRecords.Add(float64(applied))
	m.staleRecords.Add(float64(stale))
}

// ObservePull records a pull; kind is "full", "incremental" or "rejected".
func (m *Metrics) ObservePull(kind string, records int) {
	if m == nil {
		return
	}
	m.pulls.WithLabelValues(kind).Inc()
	m.pulledRecords.Add(float64(records))
}

func (m *Metrics) SubscriberAdded() {
	if m != nil {
		m.subscribers.Inc()
	}
}

func (m *Metrics) SubscriberRemoved() {
	if m != nil {
		m.subscribers.Dec()
	}
}

// UnaryServerInterceptor times every unary call by method and status code.
func (m *Metrics) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if m != nil {
			m.rpcDuration.WithLabelValues(info.FullMethod, status.Code(err).String()).
				Observe(time.Since(start).Seconds())
		}
		return resp, err
	}
}
