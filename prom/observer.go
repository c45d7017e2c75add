// Package prom exports checktype invocation outcomes as Prometheus metrics.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ygrebnov/checktype"
)

// Observer counts checked invocations and contract violations.
type Observer struct {
	invocations *prometheus.CounterVec
	violations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewObserver creates an observer and registers its collectors with reg.
// A nil reg means prometheus.DefaultRegisterer.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &Observer{
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checktype_invocations_total",
				Help: "Total checked invocations by outcome",
			},
			[]string{"callable", "outcome"},
		),
		violations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "checktype_violations_total",
				Help: "Total contract violations by stage",
			},
			[]string{"callable", "stage"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "checktype_invoke_duration_seconds",
				Help:    "Checked invocation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
			},
			[]string{"callable"},
		),
	}

	for _, c := range []prometheus.Collector{o.invocations, o.violations, o.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// ObserveInvoke records one invocation.
func (o *Observer) ObserveInvoke(observation checktype.InvokeObservation) {
	if o == nil {
		return
	}
	o.invocations.WithLabelValues(observation.Callable, string(observation.Outcome)).Inc()
	o.duration.WithLabelValues(observation.Callable).Observe(observation.Duration.Seconds())
	if observation.Outcome.Violation() {
		o.violations.WithLabelValues(observation.Callable, observation.Stage.String()).Inc()
	}
}

var _ checktype.Observer = (*Observer)(nil)
