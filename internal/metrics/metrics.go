// Package metrics exposes Prometheus collectors for the session server.
//
// A nil *Metrics is valid and records nothing, so components can be
// constructed without metrics in tests.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dropin"

// Metrics holds every collector the server reports.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests      *prometheus.CounterVec
	persistFailures  *prometheus.CounterVec
	ocrRequests      *prometheus.CounterVec
	gamesPromoted    prometheus.Counter
	courtsInUse      prometheus.Gauge
	participants     prometheus.Gauge
	participantsPaid prometheus.Gauge
}

// New creates the collectors on a private registry, together with the
// standard Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Failed roster writes, by storage backend.",
		}, []string{"backend"}),
		ocrRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ocr_requests_total",
			Help:      "Text recognition requests, by result.",
		}, []string{"result"}),
		gamesPromoted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_promoted_total",
			Help:      "Queue groups promoted onto a court.",
		}),
		courtsInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "courts_in_use",
			Help:      "Games currently playing.",
		}),
		participants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "participants",
			Help:      "Participants on the roster.",
		}),
		participantsPaid: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "participants_paid",
			Help:      "Participants with a recorded payment.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.persistFailures,
		m.ocrRequests,
		m.gamesPromoted,
		m.courtsInUse,
		m.participants,
		m.participantsPaid,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRPC(procedure, code string) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
}

func (m *Metrics) PersistFailure(backend string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(backend).Inc()
}

func (m *Metrics) OCRResult(result string) {
	if m == nil {
		return
	}
	m.ocrRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) GamePromoted() {
	if m == nil {
		return
	}
	m.gamesPromoted.Inc()
}

// SetCourtsInUse records the number of games on court.
func (m *Metrics) SetCourtsInUse(n int) {
	if m == nil {
		return
	}
	m.courtsInUse.Set(float64(n))
}

// SetRoster records the roster size and how many have paid.
func (m *Metrics) SetRoster(total, paid int) {
	if m == nil {
		return
	}
	m.participants.Set(float64(total))
	m.participantsPaid.Set(float64(paid))
}
