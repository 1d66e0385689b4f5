// Package metrics exposes Prometheus counters for the login flow and the authorization gate.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "station_portal"

// Gate decisions
const (
	DecisionAllowed    = "allowed"
	DecisionRedirected = "redirected"
)

// Login results
const (
	LoginStarted   = "started"
	LoginSucceeded = "succeeded"
	LoginFailed    = "failed"
)

// Recorder is what the HTTP layer reports to
type Recorder interface {
	RecordGateDecision(decision string)
	RecordLogin(result string)
	RecordLogout()
}

type Collector struct {
	gateDecisions *prometheus.CounterVec
	logins        *prometheus.CounterVec
	logouts       prometheus.Counter
}

var _ Recorder = (*Collector)(nil)

// NewCollector creates the collectors and registers them with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_decisions_total",
			Help:      "Protected route requests by authorization gate decision.",
		}, []string{"decision"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login flow events by result.",
		}, []string{"result"}),
		logouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logouts_total",
			Help:      "Completed logouts.",
		}),
	}
	reg.MustRegister(c.gateDecisions, c.logins, c.logouts)
	return c
}

// RegisterSessionGauge exposes the live session count reported by count
func RegisterSessionGauge(reg prometheus.Registerer, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Sessions currently held by the session store.",
	}, func() float64 {
		return float64(count())
	}))
}

func (c *Collector) RecordGateDecision(decision string) {
	c.gateDecisions.WithLabelValues(decision).Inc()
}

func (c *Collector) RecordLogin(result string) {
	c.logins.WithLabelValues(result).Inc()
}

func (c *Collector) RecordLogout() {
	c.logouts.Inc()
}

// Handler returns the Prometheus scrape handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
