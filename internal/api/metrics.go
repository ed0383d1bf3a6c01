package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the collectors a Binding feeds.
type Metrics struct {
	LiveHandles        prometheus.Gauge
	TableCalls         *prometheus.CounterVec
	Dispatches         *prometheus.CounterVec
	CallbackRejections *prometheus.CounterVec
	AffinityRejections *prometheus.CounterVec
	Transitions        *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LiveHandles: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_handles",
			Help:      "Engine tables the host holds a reference to",
		}),
		TableCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_calls_total",
			Help:      "Calls into engine table slots",
		}, []string{"family"}),
		Dispatches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callback_dispatches_total",
			Help:      "Engine calls delivered to host closures",
		}, []string{"family"}),
		CallbackRejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callback_rejections_total",
			Help:      "Engine calls refused because they arrived on the wrong thread",
		}, []string{"family"}),
		AffinityRejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "affinity_rejections_total",
			Help:      "Host operations refused because they ran on the wrong thread",
		}, []string{"op"}),
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_transitions_total",
			Help:      "Lifecycle states entered",
		}, []string{"state"}),
	}
}
