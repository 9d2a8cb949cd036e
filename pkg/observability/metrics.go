package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/aretw0/roster/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "roster"

// Metrics holds the collectors fed by store hooks and the HTTP adapter.
type Metrics struct {
	Actions      *prometheus.CounterVec
	Dropped      *prometheus.CounterVec
	Presented    *prometheus.CounterVec
	Contacts     *prometheus.GaugeVec
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on promhttp.Handler().
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_total",
				Help:      "Actions that changed a screen, by kind.",
			},
			[]string{"action"},
		),
		Dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dropped_actions_total",
				Help:      "Actions that left a screen unchanged (stale or no-op), by kind.",
			},
			[]string{"action"},
		),
		Presented: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "presentations_total",
				Help:      "Overlays presented, by destination.",
			},
			[]string{"destination"},
		),
		Contacts: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "contacts",
				Help:      "Contacts currently listed, by session.",
			},
			[]string{"session"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Actions, m.Dropped, m.Presented, m.Contacts, m.HTTPRequests, m.HTTPDuration)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAction: func(_ context.Context, e *domain.ActionEvent) {
			m.Actions.WithLabelValues(e.Action).Inc()
			m.Contacts.WithLabelValues(e.SessionID).Set(float64(e.Contacts))
		},
		OnPresent: func(_ context.Context, e *domain.DestinationEvent) {
			m.Presented.WithLabelValues(string(e.To)).Inc()
		},
		OnDrop: func(_ context.Context, e *domain.ActionEvent) {
			m.Dropped.WithLabelValues(e.Action).Inc()
		},
	}
}

// RecordHTTPRequest observes one served request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	statusLabel := strconv.Itoa(status)
	m.HTTPRequests.WithLabelValues(method, route, statusLabel).Inc()
	m.HTTPDuration.WithLabelValues(method, route, statusLabel).Observe(duration.Seconds())
}
