// Package metrics holds the prometheus collectors of the assistant.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// AnalysisRuns counts finished analysis runs by source and outcome.
	AnalysisRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assistant",
		Subsystem: "analysis",
		Name:      "runs_total",
		Help:      "Number of analysis runs by source and outcome",
	}, []string{"source", "outcome"})

	// AnalysisLatency observes how long a run took end to end.
	AnalysisLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "assistant",
		Subsystem: "analysis",
		Name:      "latency_seconds",
		Help:      "Latency of analysis runs (seconds)",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	// RejectedRuns counts run attempts refused before any request was sent.
	RejectedRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assistant",
		Subsystem: "analysis",
		Name:      "rejected_total",
		Help:      "Number of analysis runs rejected locally",
	}, []string{"reason"})

	// Selections counts date clicks by resulting phase.
	Selections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assistant",
		Subsystem: "selection",
		Name:      "clicks_total",
		Help:      "Number of date clicks by resulting selection phase",
	}, []string{"phase"})

	// NotifyErrors counts notifications that could not be delivered.
	NotifyErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assistant",
		Subsystem: "notifier",
		Name:      "errors_total",
		Help:      "Number of failed notifications by channel",
	}, []string{"channel"})
)

// Register registers all collectors in the given registry, or in
// prometheus.DefaultRegisterer when none is passed.
func Register(registerers ...prometheus.Registerer) {
	once.Do(func() {
		var reg prometheus.Registerer
		if len(registerers) > 0 && registerers[0] != nil {
			reg = registerers[0]
		} else {
			reg = prometheus.DefaultRegisterer
		}
		reg.MustRegister(
			AnalysisRuns,
			AnalysisLatency,
			RejectedRuns,
			Selections,
			NotifyErrors,
		)
	})
}
