// Package metrics exposes Prometheus metrics for the gateway. Metrics are
// fed from eventbus events so the request path stays free of metric calls.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	eventbus "github.com/gqlgate/gqlgate/internal/eventbus"
	events "github.com/gqlgate/gqlgate/internal/events"
)

// Metrics holds the gateway-level collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	OperationsTotal *prometheus.CounterVec
	RejectionsTotal *prometheus.CounterVec
}

// New creates the collectors under the given namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled",
			},
			[]string{"method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "graphql",
				Name:      "operations_total",
				Help:      "Total number of GraphQL operations executed",
			},
			[]string{"type", "outcome"},
		),
		RejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "rejections_total",
				Help:      "Total number of requests rejected at the protocol level",
			},
			[]string{"code"},
		),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.RequestsTotal, m.RequestDuration, m.OperationsTotal, m.RejectionsTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Attach subscribes the collectors to the global event bus and returns an
// unsubscribe function.
func (m *Metrics) Attach() (unsubscribe func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(_ context.Context, e events.HTTPFinish) {
			m.RequestsTotal.WithLabelValues(e.Request.Method, strconv.Itoa(e.Status)).Inc()
			m.RequestDuration.WithLabelValues(e.Request.Method).Observe(e.Duration.Seconds())
		}),
		eventbus.Subscribe(func(_ context.Context, e events.GraphQLFinish) {
			outcome := "ok"
			if len(e.Errors) > 0 {
				outcome = "error"
			}
			opType := e.OperationType
			if opType == "" {
				opType = "unknown"
			}
			m.OperationsTotal.WithLabelValues(opType, outcome).Inc()
		}),
		eventbus.Subscribe(func(_ context.Context, e events.RequestRejected) {
			m.RejectionsTotal.WithLabelValues(e.Code).Inc()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// NewRegistry builds a registry with the gateway collectors plus Go runtime
// and process collectors.
func NewRegistry(m *Metrics) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := m.Register(reg); err != nil {
		return nil, err
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, nil
}

// Handler returns an http.Handler serving reg in the Prometheus exposition
// format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
