package hsm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric definitions with appropriate labels. Charts are small closed sets,
// so chart, state, event, and guard names are safe label values.
var (
	// dispatchesTotal tracks dispatched events by chart, event, and outcome
	// (transition, internal, dropped, or terminated).
	dispatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hsm_dispatches_total",
		Help: "Total number of dispatched events by chart, event, and outcome",
	}, []string{"chart", "event", "outcome"})

	// transitionsTotal tracks executed transitions, external and internal,
	// labelled by kind.
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hsm_transitions_total",
		Help: "Total number of executed transitions by chart, source, target, and kind",
	}, []string{"chart", "source", "target", "kind"})

	// guardEvaluationsTotal tracks guard evaluations and their results.
	guardEvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hsm_guard_evaluations_total",
		Help: "Total number of guard evaluations by chart, guard, and result",
	}, []string{"chart", "guard", "result"})

	// dispatchDuration tracks the duration of a single dispatch, including
	// all host callbacks it invokes.
	dispatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hsm_dispatch_duration_seconds",
		Help:    "Duration of event dispatch by chart and outcome",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1, 10},
	}, []string{"chart", "outcome"})
)
