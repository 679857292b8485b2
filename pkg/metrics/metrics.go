// Package metrics exposes Prometheus collectors for logged store actions.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storelog"

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector records action outcomes, state changes and durations.
// A nil *Collector is a valid no-op.
type Collector struct {
	actions  *prometheus.CounterVec
	changes  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewCollector creates the collectors and registers them on reg
// (prometheus.DefaultRegisterer when nil).
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_total",
				Help:      "Total number of intercepted store actions",
			},
			[]string{"store", "action", "outcome"},
		),
		changes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "state_changes_total",
				Help:      "Total number of actions that changed the store state",
			},
			[]string{"store", "action"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "action_duration_seconds",
				Help:      "Duration of intercepted store actions",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"store", "action"},
		),
	}

	for _, col := range []prometheus.Collector{c.actions, c.changes, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	return c, nil
}

// Observe records one finished action.
func (c *Collector) Observe(storeID, action string, failed, changed bool, d time.Duration) {
	if c == nil {
		return
	}

	outcome := OutcomeOK
	if failed {
		outcome = OutcomeError
	}
	c.actions.WithLabelValues(storeID, action, outcome).Inc()
	if changed {
		c.changes.WithLabelValues(storeID, action).Inc()
	}
	c.duration.WithLabelValues(storeID, action).Observe(d.Seconds())
}
