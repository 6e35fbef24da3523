package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics counts outcomes of the integrations. A nil *Metrics records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	emailsDispatched *prometheus.CounterVec
	checkoutSessions *prometheus.CounterVec
	uploads          *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		emailsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "emails_dispatched_total",
			Help: "Transactional emails handed to the provider, by kind and result.",
		}, []string{"kind", "result"}),
		checkoutSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Hosted checkout sessions requested, by plan and result.",
		}, []string{"plan", "result"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "File uploads, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.emailsDispatched, m.checkoutSessions, m.uploads)
	return m
}

func (m *Metrics) EmailDispatched(kind string, ok bool) {
	if m == nil {
		return
	}
	m.emailsDispatched.WithLabelValues(kind, result(ok)).Inc()
}

func (m *Metrics) CheckoutSession(plan string, ok bool) {
	if m == nil {
		return
	}
	m.checkoutSessions.WithLabelValues(plan, result(ok)).Inc()
}

func (m *Metrics) Upload(ok bool) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}
