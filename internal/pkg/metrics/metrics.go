package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the application collectors. A dedicated registry keeps tests
// independent of the global default one.
type Registry struct {
	reg             *prometheus.Registry
	transitions     *prometheus.CounterVec
	recommendations *prometheus.CounterVec
	leadsCreated    prometheus.Counter
}

// New creates a registry with all collectors registered.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gcbp",
			Name:      "lead_transitions_total",
			Help:      "Lead status transition requests by source, target and outcome.",
		}, []string{"from", "to", "result"}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gcbp",
			Name:      "offer_recommendations_total",
			Help:      "Bank offer recommendations by outcome.",
		}, []string{"outcome"}),
		leadsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gcbp",
			Name:      "leads_created_total",
			Help:      "Loan applications submitted.",
		}),
	}
	r.reg.MustRegister(
		r.transitions,
		r.recommendations,
		r.leadsCreated,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return r
}

// Transition records a transition attempt. result is "ok", "invalid" or "conflict".
func (r *Registry) Transition(from, to, result string) {
	if r == nil {
		return
	}
	r.transitions.WithLabelValues(from, to, result).Inc()
}

// Recommendation records whether a recommendation matched an offer.
func (r *Registry) Recommendation(matched bool) {
	if r == nil {
		return
	}
	outcome := "no_match"
	if matched {
		outcome = "matched"
	}
	r.recommendations.WithLabelValues(outcome).Inc()
}

// LeadCreated records a new loan application.
func (r *Registry) LeadCreated() {
	if r == nil {
		return
	}
	r.leadsCreated.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer returns the underlying gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
